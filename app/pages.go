package app

import (
	"strings"

	"teamcomp/domain/table"
)

// DescriptionBlock is a heading with supporting lines shown above a page's tables
type DescriptionBlock struct {
	Heading string
	// Lines are rendered as markdown
	Lines []string
}

// PageConfig describes one data page. Every boss page is the same
// controller with a different config.
type PageConfig struct {
	Slug          string
	Name          string
	Endpoint      string
	Mode          table.Mode
	DropEmptyRows bool
	ShowImages    bool
	// SubHeaders label the sub-columns of fixed-triplet tables
	SubHeaders  []string
	Description []DescriptionBlock
	// Hidden pages are routed but left out of menus
	Hidden bool
}

// TripletSubHeaders label the name/fast/charged columns
var TripletSubHeaders = []string{"Pokémon", "Fast Move", "Charged Move"}

// DefaultPages returns the page registry in menu order
func DefaultPages() []PageConfig {
	return []PageConfig{
		{
			Slug:          "giovanni",
			Name:          "Giovanni",
			Endpoint:      "giovanniTeam",
			Mode:          table.FixedTriplet,
			DropEmptyRows: true,
			ShowImages:    true,
			SubHeaders:    TripletSubHeaders,
			Description: []DescriptionBlock{
				{
					Lines: []string{
						"Giovanni is the leader of Team GO Rocket. He always leads with the **first** Pokémon on this page; it may rotate between seasons.",
					},
				},
				{
					Heading: "Giovanni's Pokémon",
					Lines: []string{
						"These are the Pokémon Giovanni uses in his current lineup. Counters are listed under each one.",
						"His lineup changes over time, so this data may lag behind the game.",
						"For the latest information, check the official Pokémon GO channels or community resources.",
					},
				},
			},
		},
		{
			Slug:       "arlo",
			Name:       "Arlo",
			Endpoint:   "arloTeam",
			Mode:       table.FixedTriplet,
			SubHeaders: TripletSubHeaders,
		},
		{
			Slug:       "cliff",
			Name:       "Cliff",
			Endpoint:   "cliffTeam",
			Mode:       table.FixedTriplet,
			SubHeaders: TripletSubHeaders,
		},
		{
			Slug:       "sierra",
			Name:       "Sierra",
			Endpoint:   "sierraTeam",
			Mode:       table.FixedTriplet,
			SubHeaders: TripletSubHeaders,
		},
		{
			Slug:     "data",
			Name:     "Raw Data",
			Endpoint: "data",
			Mode:     table.VariableList,
			Hidden:   true,
		},
	}
}

// FindPage returns the page registered under slug
func FindPage(pages []PageConfig, slug string) (PageConfig, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, p := range pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return PageConfig{}, false
}

// MenuPages filters out hidden pages
func MenuPages(pages []PageConfig) []PageConfig {
	out := make([]PageConfig, 0, len(pages))
	for _, p := range pages {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}
