package export

import (
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

// ICalRenderer turns a trip's calendar into an iCalendar document so the
// built itinerary can be imported into external calendar applications.
type ICalRenderer struct{}

func NewICalRenderer() *ICalRenderer {
	return &ICalRenderer{}
}

func (r *ICalRenderer) Render(t trip.Trip) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Wonderplan//Trip Calendar//EN")
	if t.Destination != "" {
		cal.SetXWRCalName(t.Name + " - " + t.Destination)
	} else {
		cal.SetXWRCalName(t.Name)
	}

	for _, e := range t.CalendarEvents {
		event := cal.AddEvent(fmt.Sprintf("%s-%d@wonderplan", t.Uid, e.ID))
		event.SetSummary(e.Title)
		if e.AllDay {
			event.SetAllDayStartAt(e.Start)
			event.SetAllDayEndAt(e.End)
		} else {
			event.SetStartAt(e.Start)
			event.SetEndAt(e.End)
		}
		if e.Description != "" {
			event.SetDescription(e.Description)
		}
		if e.Location != nil {
			event.SetLocation(e.Location.Address)
			event.SetGeo(e.Location.Lat, e.Location.Lng)
		}
	}

	return cal.Serialize()
}
