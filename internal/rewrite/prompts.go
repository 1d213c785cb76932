package rewrite

import (
	"fmt"
	"strings"

	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/textutil"
)

// Style selects the editorial register of the rewritten article.
type Style string

const (
	StyleTechnical  Style = "Technical"
	StyleNormal     Style = "Normal"
	StyleEasy       Style = "Easy"
	StylePopulair   Style = "Populair"
	StyleNewsReader Style = "News Reader"
)

// Language selects the output language of the rewritten article.
type Language string

const (
	LanguageDutch   Language = "Dutch"
	LanguageEnglish Language = "English"
	LanguageGerman  Language = "German"
)

var stylePrompts = map[Style]map[Language]string{
	StyleTechnical: {
		LanguageDutch:   "Herschrijf de tekst in het Nederlands in een technische, formele stijl. Gebruik professionele terminologie en gedetailleerde uitleg. Behoud alle belangrijke informatie maar presenteer het professioneel.",
		LanguageEnglish: "Rewrite the text in English in a technical, formal style. Use professional terminology and detailed explanations. Maintain all important information but present it professionally.",
		LanguageGerman:  "Schreiben Sie den Text auf Deutsch in einem technischen, formalen Stil. Verwenden Sie professionelle Terminologie und detaillierte Erklärungen. Behalten Sie alle wichtigen Informationen bei, aber präsentieren Sie sie professionell.",
	},
	StyleNormal: {
		LanguageDutch:   "Herschrijf de tekst in het Nederlands in een standaard nieuwsstijl. Gebruik duidelijke taal en behoud alle belangrijke informatie.",
		LanguageEnglish: "Rewrite the text in English in a standard news style. Use clear language and maintain all important information.",
		LanguageGerman:  "Schreiben Sie den Text auf Deutsch in einem Standard-Nachrichtenstil. Verwenden Sie klare Sprache und behalten Sie alle wichtigen Informationen bei.",
	},
	StyleEasy: {
		LanguageDutch:   "Herschrijf de tekst in het Nederlands in een eenvoudige, begrijpelijke stijl. Gebruik korte zinnen en eenvoudige woorden.",
		LanguageEnglish: "Rewrite the text in English in a simple, understandable style. Use short sentences and simple words.",
		LanguageGerman:  "Schreiben Sie den Text auf Deutsch in einem einfachen, verständlichen Stil. Verwenden Sie kurze Sätze und einfache Wörter.",
	},
	StylePopulair: {
		LanguageDutch:   "Herschrijf de tekst in het Nederlands in een populaire, aantrekkelijke stijl. Gebruik levendige taal en maak het boeiend.",
		LanguageEnglish: "Rewrite the text in English in a popular, attractive style. Use vivid language and make it engaging.",
		LanguageGerman:  "Schreiben Sie den Text auf Deutsch in einem populären, attraktiven Stil. Verwenden Sie lebendige Sprache.",
	},
	StyleNewsReader: {
		LanguageDutch:   "Herschrijf de tekst in het Nederlands in de stijl van een professionele nieuwslezer. Gebruik formele maar toegankelijke taal.",
		LanguageEnglish: "Rewrite the text in English in the style of a professional news reader. Use formal but accessible language.",
		LanguageGerman:  "Schreiben Sie den Text auf Deutsch im Stil eines Nachrichtensprechers.",
	},
}

// stylePrompt resolves the system prompt for a style and language combination,
// defaulting to the standard Dutch news style for unknown combinations.
func stylePrompt(style Style, language Language) string {
	if byLang, ok := stylePrompts[style]; ok {
		if p, ok := byLang[language]; ok {
			return p
		}
	}
	return stylePrompts[StyleNormal][LanguageDutch]
}

func bodyPrompt(style Style, chunk string) string {
	return fmt.Sprintf(
		"Herschrijf dit nieuwsartikel in het Nederlands in %s stijl. "+
			"Gebruik HTML met <h3> sectiekoppen en <p> paragrafen. Voeg <br><br> in tussen blokken. "+
			"Schrijf helder, feitelijk en vlot.\n\n%s",
		lowerStyle(style), chunk)
}

func titlePrompt(body string) string {
	return "Genereer een krachtige Nederlandstalige nieuws-titel (max 110 tekens) voor onderstaande tekst:\n\n" + truncate(body, 600)
}

const categoryPrompt = "Classificeer de categorie van de volgende Nederlandse tekst met één woord. " +
	"Kies uit: Politiek, Sport, Economie, Gezondheid, Technologie, Cultuur, " +
	"Onderwijs, Milieu, Internationaal, of Nieuws."

const tagsPrompt = "Genereer precies drie Nederlandse tags gescheiden door komma's. " +
	"Voorbeeld: 'Politiek, Nederland, Verkiezingen'."

const descriptionSystemPrompt = "Je bent een professionele Nederlandse journalist die korte, heldere samenvattingen schrijft."

func descriptionPrompt(title, context string) string {
	return fmt.Sprintf(`Schrijf een korte, informatieve samenvatting van maximaal 150 tekens voor dit nieuwsartikel.
Maak het één complete zin zonder afkortingen of "...". Focus op de hoofdpunten.

Titel: %s
Tekst: %s

Antwoord alleen met de samenvatting, geen extra tekst.`, title, context)
}

func synopsisPrompt(title, category, summary string) string {
	return fmt.Sprintf(`Schrijf een korte inleidende paragraaf (50-80 woorden) voor een forumthread over dit nieuwsartikel.
Nodig gebruikers uit om deel te nemen aan de discussie.

Titel: %s
Categorie: %s
Samenvatting: %s

Maak het uitnodigend en informatief.`, title, category, truncate(summary, 200))
}

func qaPrompt(title, context string) string {
	return fmt.Sprintf(`Genereer 3-4 relevante vragen en antwoorden over dit politienieuws artikel voor een FAQ sectie.
Vragen moeten logisch zijn voor lezers die meer willen weten. Antwoorden kort en feitelijk.
Format: Q: vraag
A: antwoord

Titel: %s
Tekst: %s`, title, context)
}

func lowerStyle(style Style) string {
	return strings.ToLower(string(style))
}

func truncate(s string, n int) string {
	return textutil.Truncate(s, n)
}
