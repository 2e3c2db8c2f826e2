package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	maxFabricFragments = 8
	minFragmentLen     = 10
	maxFragmentLen     = 400
)

// fabricKeywords flag text fragments worth keeping for the description.
// Matched case-sensitively: headings and spec tables capitalize these.
var fabricKeywords = []string{
	"Material", "Fabric", "Composition", "Fit",
	"Description", "Details", "Cotton", "Polyester", "Silk",
}

// mainImageSelector targets the plausibly-main product image by id, class
// and alt-text signals.
const mainImageSelector = `img[id*="main"], img[class*="main"], img[class*="product"], img[alt*="product"]`

// HeuristicStrategy is the fallback for pages without structured data:
// a heading (or trimmed page title), an attribute-matched main image, and a
// description synthesized from fabric-related text fragments.
type HeuristicStrategy struct{}

func (s *HeuristicStrategy) Name() string { return "heuristic" }

func (s *HeuristicStrategy) Extract(doc *goquery.Document, pageURL string) (*ProductData, error) {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = pageTitle(doc)
	}

	img := doc.Find(mainImageSelector).First()
	if img.Length() == 0 || title == "" {
		return nil, nil
	}
	image := BestImageURL(img)
	if image == "" {
		return nil, nil
	}

	return &ProductData{
		Title:       title,
		Image:       image,
		Description: FabricDetails(doc),
	}, nil
}

// pageTitle falls back to the document <title>, truncated at the first "|"
// or "-" delimiter where sites append the store name.
func pageTitle(doc *goquery.Document) string {
	title := doc.Find("title").First().Text()
	title = strings.SplitN(title, "|", 2)[0]
	title = strings.SplitN(title, "-", 2)[0]
	return strings.TrimSpace(title)
}

// FabricDetails walks all text nodes in document order and collects up to
// maxFabricFragments short fragments mentioning fabric, fit or material,
// joined into a single description.
func FabricDetails(doc *goquery.Document) string {
	var details strings.Builder
	count := 0

	body := doc.Find("body")
	if body.Length() == 0 {
		return ""
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if count >= maxFabricFragments {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if len(text) > minFragmentLen && len(text) < maxFragmentLen && containsAny(text, fabricKeywords) {
				details.WriteString(text)
				details.WriteString(". ")
				count++
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range body.Nodes {
		walk(n)
	}
	return strings.TrimSpace(details.String())
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
