package ranking

import "strings"

// Icon is the presentation pair shown next to a service category.
type Icon struct {
	Image      string
	Background string
}

// DefaultIcon is used for empty or unknown categories.
var DefaultIcon = Icon{Image: "images/map_painter.png", Background: "#f0f0f0"} //nolint: gochecknoglobals

// icons is keyed by lower-cased category name and is never mutated.
var icons = map[string]Icon{ //nolint: gochecknoglobals
	"painter":     {"images/map_painter.png", "#fee1d5"},
	"plumber":     {"images/ic_twotone-plumbing.png", "#d0e8f5"},
	"caterer":     {"images/chef-cap.png", "#d2e6e4"},
	"electrician": {"images/heroicons-solid_light-bulb.png", "#fff3d9"},
	"cleaner":     {"images/arcticons_cache-cleaner.png", "#d2ecd3"},
	"auto mec.":   {"images/car-sport.png", "#d1d7e7"},
	"locksmith":   {"images/map_locksmith.png", "#ffe9e9"},
	"tiler":       {"images/game-icons_domino-tiles.png", "#d6d6d6"},
	"babysitter":  {"images/fa-solid_baby.png", "#e9edf4"},
	"gardener":    {"images/entypo_flower.png", "#d2ecd3"},
	"carpenter":   {"images/hammer.png", "#e9edf5"},
	"barber":      {"images/hair-clipper.png", "#f0eded"},
	"bricklayer":  {"images/brick-pile.png", "#d1d7e7"},
	"uphosterer":  {"images/furniture.png", "#fff3d9"},
	"lawyer":      {"images/gavel.png", "#d2ecd3"},
	"welder":      {"images/welder-industrial-factory.png", "#d2e6e4"},
	"pedicurist":  {"images/fingernail.png", "#ffe1d5"},
	"hairdresser": {"images/hair-dryer.png", "#d0e8f5"},
}

// IconFor returns the icon of category, falling back to DefaultIcon.
func IconFor(category string) Icon {
	if icon, ok := icons[strings.ToLower(category)]; ok {
		return icon
	}

	return DefaultIcon
}

// Categories returns the number of known categories.
func Categories() int { return len(icons) }
