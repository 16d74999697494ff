package user

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	Timezone string
	// CalendarLocale selects the language of generated category titles ("en" or "he").
	CalendarLocale string
}
