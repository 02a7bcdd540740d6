package category

import "strings"

// Category is the content lens that shapes both the search query and the summary tone.
type Category int

// Supported categories. Overview is the zero value and the fallback for unknown input.
const (
	Overview Category = iota
	Research
	News
	FactCheck
)

// Depth is the search cost/quality tier.
type Depth string

// Search depth tiers.
const (
	DepthBasic    Depth = "basic"
	DepthAdvanced Depth = "advanced"
)

// aliases maps lower-cased wire names to categories. The legacy web client ids
// (articles, studies) are kept next to the display names.
var aliases = map[string]Category{
	"overview":   Overview,
	"articles":   Overview,
	"research":   Research,
	"studies":    Research,
	"news":       News,
	"fact-check": FactCheck,
	"factcheck":  FactCheck,
	"fact_check": FactCheck,
}

// Parse maps a wire name to a Category. Unknown names resolve to Overview.
func Parse(s string) Category {
	if c, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return Overview
}

// All returns every category in display order.
func All() []Category {
	return []Category{Overview, Research, News, FactCheck}
}

// String returns the canonical wire name.
func (c Category) String() string {
	switch c {
	case Research:
		return "Research"
	case News:
		return "News"
	case FactCheck:
		return "Fact-Check"
	default:
		return "Overview"
	}
}

// Label returns the human readable tab title.
func (c Category) Label() string {
	return c.String()
}

// Depth returns the search tier. Claim verification and academic material need the deep tier.
func (c Category) Depth() Depth {
	switch c {
	case Research, FactCheck:
		return DepthAdvanced
	default:
		return DepthBasic
	}
}

// MaxResults returns the upper bound on search results requested for the category.
func (c Category) MaxResults() int {
	switch c {
	case Research, News:
		return 5
	case FactCheck:
		return 6
	default:
		return 4
	}
}
