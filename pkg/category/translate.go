package category

// translations maps canonical category titles to localized display titles.
// Untranslated titles pass through unchanged.
var translations = map[string]map[string]string{
	"en": {
		TitleAttractions: "attractions",
		TitleFood:        "food",
		TitleHotels:      "hotels",
		TitleFlights:     "flights",
		TitleNightlife:   "nightlife",
		TitleShopping:    "shopping",
		TitleCulture:     "culture",
		TitleNature:      "nature",
		TitleSports:      "sports",
		TitleTransport:   "transport",
		TitleGeneral:     "general",
	},
	"he": {
		TitleAttractions: "אטרקציות",
		TitleFood:        "אוכל",
		TitleHotels:      "בתי מלון",
		TitleFlights:     "טיסות",
		TitleNightlife:   "חיי לילה",
		TitleShopping:    "קניות",
		TitleCulture:     "תרבות",
		TitleNature:      "טבע",
		TitleSports:      "ספורט",
		TitleTransport:   "תחבורה",
		TitleGeneral:     "כללי",
	},
}

// Translate returns the localized display title for the given locale.
// Unknown locales and unknown titles return the title unchanged.
func Translate(title, locale string) string {
	dictionary, ok := translations[locale]
	if !ok {
		return title
	}
	if translated, ok := dictionary[title]; ok {
		return translated
	}
	return title
}
