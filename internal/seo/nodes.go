package seo

// Context is the schema.org JSON-LD context.
const Context = "https://schema.org"

// Ref is a JSON-LD reference to a node defined elsewhere in the graph.
type Ref struct {
	ID string `json:"@id"`
}

// Graph is an embeddable JSON-LD document with a flat @graph of nodes.
type Graph struct {
	Context string `json:"@context"`
	Nodes   []any  `json:"@graph"`
}

type Organization struct {
	Type   string   `json:"@type"`
	ID     string   `json:"@id"`
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Logo   *Image   `json:"logo,omitempty"`
	SameAs []string `json:"sameAs,omitempty"`
}

type Image struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type SearchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

type WebSite struct {
	Type            string        `json:"@type"`
	ID              string        `json:"@id"`
	URL             string        `json:"url"`
	Name            string        `json:"name"`
	Publisher       Ref           `json:"publisher"`
	InLanguage      string        `json:"inLanguage,omitempty"`
	PotentialAction *SearchAction `json:"potentialAction,omitempty"`
}

type WebPage struct {
	Type          string `json:"@type"`
	ID            string `json:"@id"`
	URL           string `json:"url"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	IsPartOf      Ref    `json:"isPartOf"`
	Breadcrumb    *Ref   `json:"breadcrumb,omitempty"`
	PrimaryImage  *Image `json:"primaryImageOfPage,omitempty"`
	DatePublished string `json:"datePublished,omitempty"`
	DateModified  string `json:"dateModified,omitempty"`
	InLanguage    string `json:"inLanguage,omitempty"`
	MainEntity    any    `json:"mainEntity,omitempty"`
}

type NewsArticle struct {
	Type             string   `json:"@type"`
	ID               string   `json:"@id"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description"`
	Image            []string `json:"image,omitempty"`
	DatePublished    string   `json:"datePublished"`
	DateModified     string   `json:"dateModified"`
	Author           Ref      `json:"author"`
	Publisher        Ref      `json:"publisher"`
	MainEntityOfPage Ref      `json:"mainEntityOfPage"`
	ArticleSection   string   `json:"articleSection,omitempty"`
	Keywords         string   `json:"keywords,omitempty"`
	WordCount        int      `json:"wordCount,omitempty"`
	TimeRequired     string   `json:"timeRequired,omitempty"`
	InLanguage       string   `json:"inLanguage,omitempty"`
	DiscussionURL    string   `json:"discussionUrl,omitempty"`
	IsBasedOn        string   `json:"isBasedOn,omitempty"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

type BreadcrumbList struct {
	Type            string     `json:"@type"`
	ID              string     `json:"@id"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type DiscussionForumPosting struct {
	Type          string `json:"@type"`
	ID            string `json:"@id"`
	Headline      string `json:"headline"`
	URL           string `json:"url"`
	Text          string `json:"text,omitempty"`
	DatePublished string `json:"datePublished"`
	Author        Ref    `json:"author"`
	Publisher     Ref    `json:"publisher"`
	IsPartOf      Ref    `json:"isPartOf"`
	About         Ref    `json:"about"`
	InLanguage    string `json:"inLanguage,omitempty"`
}

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

type FAQPage struct {
	Type       string     `json:"@type"`
	ID         string     `json:"@id"`
	MainEntity []Question `json:"mainEntity"`
}
