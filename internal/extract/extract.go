package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Document is a simplified representation of extracted page content.
type Document struct {
	Title string
	Text  string
}

// MinContentChars is the threshold an extraction strategy must reach for its
// text to count as the page's main content.
const MinContentChars = 200

// The chain runs in order and the first strategy whose normalized text
// reaches MinContentChars wins. Semantic containers are most trustworthy,
// well-known container ids and classes next, then progressively blunter
// fallbacks.
var strategies = []strategy{
	{name: "article", extract: selectorStrategy("article")},
	{name: "main", extract: selectorStrategy("main")},
	{name: "role-main", extract: selectorStrategy("[role='main']")},
	{name: "container", extract: selectorStrategy("#content, #main-content, .post-content, .article-body, .entry-content")},
	{name: "paragraphs", extract: paragraphStrategy},
	{name: "body", extract: selectorStrategy("body")},
}

type strategy struct {
	name    string
	extract func(doc *goquery.Document) string
}

// FromHTML extracts readable text from HTML by trying each strategy in turn.
// When no strategy yields enough text the returned Document has an empty
// Text; deciding what that means is the caller's business.
func FromHTML(input []byte) Document {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return Document{}
	}
	doc := goquery.NewDocumentFromNode(root)

	title := findTitle(doc)
	for _, st := range strategies {
		text := normalize(st.extract(doc))
		if utf8.RuneCountInString(text) >= MinContentChars {
			log.Debug().Str("strategy", st.name).Int("chars", utf8.RuneCountInString(text)).Msg("content extracted")
			return Document{Title: title, Text: text}
		}
	}
	return Document{Title: title}
}

// selectorStrategy extracts text from the first element matching selector,
// walking its subtree with the same block handling as the body fallback.
func selectorStrategy(selector string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			return ""
		}
		var b strings.Builder
		collectText(&b, sel.Nodes[0], false)
		return b.String()
	}
}

// paragraphStrategy aggregates every <p> on the page. Useful for layouts
// that scatter the article across generic wrappers.
func paragraphStrategy(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n\n")
}

// findTitle prefers the og:title meta tag over <title>, which tends to carry
// site-name suffixes.
func findTitle(doc *goquery.Document) string {
	if content, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if t := strings.TrimSpace(content); t != "" {
			return t
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if n.Type == html.ElementNode {
		// Skip known boilerplate containers like cookie/consent banners
		if isBoilerplateContainer(n) {
			return
		}
		name := strings.ToLower(n.Data)
		switch name {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe":
			return
		case "pre", "code":
			inPre = true
		case "br", "hr":
			b.WriteString("\n")
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li":
			// Add a newline before block starts to ensure separation
			b.WriteString("\n")
		case "ul", "ol":
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.ReplaceAll(data, "\t", " ")
			data = strings.ReplaceAll(data, "\r", " ")
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		switch name {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n\n")
		case "li":
			b.WriteString("\n")
		case "pre", "code":
			b.WriteString("\n")
		}
	}
}

// isBoilerplateContainer returns true if the element looks like a cookie/consent banner.
func isBoilerplateContainer(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && !strings.HasPrefix(key, "data-") && key != "aria-label" && key != "role" {
			continue
		}
		val := strings.ToLower(attr.Val)
		if containsAny(val, []string{"cookie", "consent", "gdpr"}) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// normalize collapses whitespace and applies Unicode NFC so that downstream
// digests and length checks see one canonical form of the same page.
func normalize(s string) string {
	return norm.NFC.String(normalizeWhitespace(s))
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
