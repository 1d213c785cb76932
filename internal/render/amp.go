package render

import "regexp"

var (
	scriptTagRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	onHandlerRe = regexp.MustCompile(`(?i)\son\w+="[^"]*"`)
	imgTagRe    = regexp.MustCompile(`(?i)<img([^>]*?)/?>`)
	brPairRe    = regexp.MustCompile(`(?i)<br\s*/?><br\s*/?>`)
)

// AMPBody transforms article body HTML into AMP-valid markup: script tags
// and inline event handlers are removed, img becomes amp-img with responsive
// layout, and doubled line breaks collapse to one.
func AMPBody(bodyHTML string) string {
	out := brPairRe.ReplaceAllString(bodyHTML, "<br>")
	out = scriptTagRe.ReplaceAllString(out, "")
	out = onHandlerRe.ReplaceAllString(out, "")
	out = imgTagRe.ReplaceAllString(out, `<amp-img$1 layout="responsive"></amp-img>`)
	return out
}
