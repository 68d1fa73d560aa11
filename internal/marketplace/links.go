// Package marketplace generates external part-search shortcuts and fetches
// optional third-party price estimates. Links are pure string building from
// configured shop templates; estimates are advisory and never written into a
// quote without the user confirming them.
package marketplace

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// ShopLink is one generated search shortcut.
type ShopLink struct {
	Shop string `json:"shop"`
	URL  string `json:"url"`
}

// LinkGenerator builds search links from configured shop templates.
type LinkGenerator struct {
	shops []shopTemplate
}

type shopTemplate struct {
	label    string
	template string
}

// NewLinkGenerator parses the comma-separated "label|urlTemplate" pairs.
// Malformed pairs are rejected so a bad deploy config fails at startup.
func NewLinkGenerator(templates string) (*LinkGenerator, error) {
	gen := &LinkGenerator{}
	for _, pair := range strings.Split(templates, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		label, template, ok := strings.Cut(pair, "|")
		if !ok || strings.TrimSpace(label) == "" || !strings.Contains(template, "%s") {
			return nil, fmt.Errorf("malformed shop template %q", pair)
		}
		gen.shops = append(gen.shops, shopTemplate{
			label:    strings.TrimSpace(label),
			template: strings.TrimSpace(template),
		})
	}
	return gen, nil
}

// Links returns one search link per configured shop. The query combines the
// part name with the vehicle identity so shop results are pre-narrowed.
func (g *LinkGenerator) Links(partName string, vehicle types.Vehicle) []ShopLink {
	if strings.TrimSpace(partName) == "" {
		return nil
	}

	terms := []string{partName}
	if vehicle.Make != "" {
		terms = append(terms, vehicle.Make)
	}
	if vehicle.Model != "" {
		terms = append(terms, vehicle.Model)
	}
	query := url.QueryEscape(strings.Join(terms, " "))

	links := make([]ShopLink, 0, len(g.shops))
	for _, shop := range g.shops {
		links = append(links, ShopLink{
			Shop: shop.label,
			URL:  fmt.Sprintf(shop.template, query),
		})
	}
	return links
}
