package registry

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// CalendarBirthday is a birthday entry on the month calendar.
type CalendarBirthday struct {
	MemberID int     `json:"member_id"`
	PIB      string  `json:"pib"`
	Day      int     `json:"day"`
	Age      int     `json:"age"`
	PhotoURL *string `json:"photo_url"`
}

// CalendarDay holds everything happening on one day of the month.
type CalendarDay struct {
	Events    []models.Event     `json:"events"`
	Birthdays []CalendarBirthday `json:"birthdays"`
}

// CalendarMonth is the month fold: a sparse by-day map of events and
// birthdays. Days with nothing on them are absent.
type CalendarMonth struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Data  map[int]*CalendarDay `json:"data"`
}

// Calendar folds the month's events and the active members' birthdays into
// a by-day map. Birthday age here is simply year minus birth year — the age
// the member turns within the requested year, regardless of today's date.
// This intentionally differs from the UpcomingBirthdays formula.
func (r *Registry) Calendar(ctx context.Context, year, month int) (*CalendarMonth, error) {
	start, end := MonthRange(year, month)
	var events []models.Event
	err := r.store.Find(ctx, store.Events, bson.M{
		"event_date": bson.M{"$gte": start, "$lt": end},
	}, &store.FindOptions{Limit: 100}, &events)
	if err != nil {
		return nil, err
	}

	members, err := r.activeMembersWithBirthDate(ctx)
	if err != nil {
		return nil, err
	}

	cal := &CalendarMonth{Year: year, Month: month, Data: make(map[int]*CalendarDay)}

	for _, e := range events {
		if len(e.EventDate) < 10 {
			continue
		}
		day, err := strconv.Atoi(e.EventDate[8:10])
		if err != nil {
			continue
		}
		cal.day(day).Events = append(cal.day(day).Events, e)
	}

	for _, m := range members {
		if m.BirthDate == nil {
			continue
		}
		bd, ok := parseDate(*m.BirthDate)
		if !ok || int(bd.Month()) != month {
			continue
		}
		day := bd.Day()
		cal.day(day).Birthdays = append(cal.day(day).Birthdays, CalendarBirthday{
			MemberID: m.OriginalID,
			PIB:      m.PIB,
			Day:      day,
			Age:      year - bd.Year(),
			PhotoURL: m.PhotoURL,
		})
	}
	return cal, nil
}

func (c *CalendarMonth) day(d int) *CalendarDay {
	entry, ok := c.Data[d]
	if !ok {
		entry = &CalendarDay{Events: []models.Event{}, Birthdays: []CalendarBirthday{}}
		c.Data[d] = entry
	}
	return entry
}
