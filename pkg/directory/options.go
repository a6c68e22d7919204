package directory

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/units"
)

// ParseUnitOptions reads the unit drop-down from a directory search page.
//
// Each <option value="CODE">Name</option> becomes a unit with the code as
// acronym, a type inferred from the name, and both strings as aliases. The
// catch-all option and options without a value are ignored.
func ParseUnitOptions(r io.Reader) ([]units.Unit, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}

	var out []units.Unit
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			if u, ok := optionUnit(n); ok {
				out = append(out, u)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out, nil
}

func optionUnit(n *html.Node) (units.Unit, bool) {
	code := strings.TrimSpace(attr(n, "value"))
	name := collapse(textContent(n))
	if code == "" || name == "" || strings.EqualFold(code, "all") {
		return units.Unit{}, false
	}
	return units.Unit{
		Canonical: name,
		Acronym:   code,
		Type:      units.InferType(name),
		Aliases:   []string{name, code},
	}, true
}
