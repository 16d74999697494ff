package category

import "strings"

// keywordTable maps activity-text keywords to category titles. The first
// keyword found in the combined title and description wins; order within a
// group does not matter because each group targets one category.
var keywordTable = []struct {
	keywords []string
	title    string
}{
	{[]string{"hotel", "hostel", "resort", "check-in", "check in"}, TitleHotels},
	{[]string{"flight", "airport", "boarding"}, TitleFlights},
	{[]string{"museum", "gallery", "temple", "palace", "cathedral", "heritage"}, TitleCulture},
	{[]string{"restaurant", "breakfast", "lunch", "dinner", "cafe", "food", "market", "tasting"}, TitleFood},
	{[]string{"bar", "club", "pub", "nightlife", "night out"}, TitleNightlife},
	{[]string{"shopping", "mall", "bazaar", "boutique"}, TitleShopping},
	{[]string{"park", "garden", "hike", "trail", "beach", "lake", "mountain", "waterfall"}, TitleNature},
	{[]string{"stadium", "match", "game", "arena"}, TitleSports},
	{[]string{"train", "ferry", "metro", "transfer", "bus"}, TitleTransport},
	{[]string{"tower", "viewpoint", "landmark", "square", "bridge", "monument"}, TitleAttractions},
}

// Infer guesses a category title from an activity's title and description.
// Matching is case-insensitive substring search; no keyword means general.
func Infer(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, group := range keywordTable {
		for _, keyword := range group.keywords {
			if strings.Contains(text, keyword) {
				return group.title
			}
		}
	}
	return TitleGeneral
}
