package directory

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/errors"
)

// StaffEntry is one staff card from a directory result page.
type StaffEntry struct {
	Name     string `json:"name" yaml:"name"`
	Position string `json:"position,omitempty" yaml:"position,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Extra    string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// SearchResult is the parsed content of a result page.
type SearchResult struct {
	Staff   []StaffEntry `json:"staff" yaml:"staff"`
	Skipped int          `json:"skipped" yaml:"skipped"`
}

// ParseStaff extracts staff cards from a directory result page.
//
// A card is a table that mentions a university e-mail address or contains a
// mailto link. When cards are nested only the innermost ones count. Cards
// without a bold name are skipped and counted in Skipped.
func ParseStaff(r io.Reader) (*SearchResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}

	result := &SearchResult{Staff: []StaffEntry{}}
	for _, card := range findCards(doc) {
		entry, ok := parseCard(card)
		if !ok {
			result.Skipped++
			continue
		}
		result.Staff = append(result.Staff, entry)
	}
	return result, nil
}

// findCards returns the innermost card tables under n in document order.
func findCards(n *html.Node) []*html.Node {
	var cards []*html.Node
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		found := false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				found = true
			}
		}
		if found {
			return true
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Table && isCard(n) {
			cards = append(cards, n)
			return true
		}
		return false
	}
	walk(n)
	return cards
}

func isCard(table *html.Node) bool {
	return strings.Contains(textContent(table), constants.EmailDomain) || findMailto(table) != nil
}

func parseCard(table *html.Node) (StaffEntry, bool) {
	b := findElement(table, atom.B)
	if b == nil {
		return StaffEntry{}, false
	}
	name := collapse(textContent(b))
	if name == "" {
		return StaffEntry{}, false
	}

	entry := StaffEntry{
		Name:  name,
		Extra: collapse(textContent(table)),
	}
	if i := findElement(table, atom.I); i != nil {
		entry.Position = collapse(textContent(i))
	}
	if a := findMailto(table); a != nil {
		entry.Email = collapse(textContent(a))
		if entry.Email == "" {
			entry.Email = mailtoAddress(attr(a, "href"))
		}
	}
	return entry, true
}

func mailtoAddress(href string) string {
	_, addr, _ := strings.Cut(href, "mailto:")
	addr, _, _ = strings.Cut(addr, "?")
	return strings.TrimSpace(addr)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	return findFirst(n, func(c *html.Node) bool {
		return c.Type == html.ElementNode && c.DataAtom == a
	})
}

func findMailto(n *html.Node) *html.Node {
	return findFirst(n, func(c *html.Node) bool {
		return c.Type == html.ElementNode && c.DataAtom == atom.A &&
			strings.Contains(strings.ToLower(attr(c, "href")), "mailto:")
	})
}

// findFirst returns the first descendant of n, depth first, that matches.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates the text nodes under n, separated by spaces.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
