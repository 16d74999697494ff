package category

import (
	"github.com/samber/lo"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

// Canonical category titles used internally before locale translation.
const (
	TitleAttractions = "CATEGORY.ATTRACTIONS"
	TitleFood        = "CATEGORY.FOOD"
	TitleHotels      = "CATEGORY.HOTELS"
	TitleFlights     = "CATEGORY.FLIGHTS"
	TitleNightlife   = "CATEGORY.NIGHTLIFE"
	TitleShopping    = "CATEGORY.SHOPPING"
	TitleCulture     = "CATEGORY.CULTURE"
	TitleNature      = "CATEGORY.NATURE"
	TitleSports      = "CATEGORY.SPORTS"
	TitleTransport   = "CATEGORY.TRANSPORT"
	TitleGeneral     = "CATEGORY.GENERAL"
)

// Kind identifies a semantic category independent of the stored title's
// locale. Stored titles are localized display strings, so kind lookup goes
// through the literal title forms a category may carry.
type Kind int

const (
	KindHotels Kind = iota
	KindFlights
)

// titleLiterals are the exact title strings a category of the given kind can
// carry after locale translation. Matching is case-sensitive string equality;
// the stored title must equal one of these verbatim.
var titleLiterals = map[Kind][]string{
	KindHotels:  {"hotels", "בתי מלון", TitleHotels},
	KindFlights: {"flights", "טיסות", TitleFlights},
}

// Defaults returns the eleven default categories, ids 1 through 11. A fresh
// slice is returned so callers can append without sharing state.
func Defaults() []trip.Category {
	return []trip.Category{
		{ID: 1, Title: TitleAttractions, Icon: "🎢"},
		{ID: 2, Title: TitleFood, Icon: "🍽️"},
		{ID: 3, Title: TitleHotels, Icon: "🏨"},
		{ID: 4, Title: TitleFlights, Icon: "✈️"},
		{ID: 5, Title: TitleNightlife, Icon: "🌃"},
		{ID: 6, Title: TitleShopping, Icon: "🛍️"},
		{ID: 7, Title: TitleCulture, Icon: "🏛️"},
		{ID: 8, Title: TitleNature, Icon: "🌲"},
		{ID: 9, Title: TitleSports, Icon: "⚽"},
		{ID: 10, Title: TitleTransport, Icon: "🚌"},
		{ID: 11, Title: TitleGeneral, Icon: "📌"},
	}
}

// iconsByTitle assigns icons to categories discovered beyond the defaults.
var iconsByTitle = map[string]string{
	"views":      "🌇",
	"parks":      "🏞️",
	"cities":     "🏘️",
	"beaches":    "🏖️",
	"beach bars": "🍻",
	"clubs":      "💃",
}

// IconFor returns the icon for a newly discovered category title, or the
// empty string when no icon is known.
func IconFor(title string) string {
	return iconsByTitle[title]
}

// FindKind returns the id of the first category whose title matches one of
// the kind's literal forms, or false when the list carries no such category.
func FindKind(categories []trip.Category, kind Kind) (int, bool) {
	literals := titleLiterals[kind]
	match, found := lo.Find(categories, func(c trip.Category) bool {
		return lo.Contains(literals, c.Title)
	})
	if !found {
		return 0, false
	}
	return match.ID, true
}
