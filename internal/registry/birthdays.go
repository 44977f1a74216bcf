package registry

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
)

// BirthdayEntry is one row of the birthday list.
type BirthdayEntry struct {
	MemberID    int     `json:"member_id"`
	PIB         string  `json:"pib"`
	BirthDate   string  `json:"birth_date"`
	Day         int     `json:"day"`
	Month       int     `json:"month"`
	Age         int     `json:"age"`
	PhoneMobile string  `json:"phone_mobile"`
	Gender      string  `json:"gender"`
	PhotoURL    *string `json:"photo_url"`
}

// UpcomingBirthday is one row of the upcoming-birthdays list.
type UpcomingBirthday struct {
	MemberID     int     `json:"member_id"`
	PIB          string  `json:"pib"`
	BirthDate    string  `json:"birth_date"`
	BirthdayDate string  `json:"birthday_date"`
	DaysUntil    int     `json:"days_until"`
	Age          int     `json:"age"`
	PhoneMobile  string  `json:"phone_mobile"`
	Gender       string  `json:"gender"`
	PhotoURL     *string `json:"photo_url"`
}

type birthdayDoc struct {
	OriginalID  int     `bson:"original_id"`
	PIB         string  `bson:"pib"`
	BirthDate   *string `bson:"birth_date"`
	PhoneMobile string  `bson:"phone_mobile"`
	Gender      string  `bson:"gender"`
	PhotoURL    *string `bson:"photo_url"`
}

func (r *Registry) activeMembersWithBirthDate(ctx context.Context) ([]birthdayDoc, error) {
	var members []birthdayDoc
	err := r.store.Find(ctx, store.Members, bson.M{"is_active": true, "birth_date": bson.M{"$ne": nil}}, &store.FindOptions{
		Projection: bson.M{"_id": 0, "original_id": 1, "pib": 1, "birth_date": 1, "phone_mobile": 1, "gender": 1, "photo_url": 1},
	}, &members)
	return members, err
}

// Birthdays lists active members' birthdays, optionally filtered to one
// month (0 means no filter). Age uses the has-had-this-year's-birthday rule.
// The list is sorted by day of month only: without a month filter, entries
// from different months interleave by day number. That quirk is kept from
// the legacy system.
func (r *Registry) Birthdays(ctx context.Context, month int) ([]BirthdayEntry, error) {
	members, err := r.activeMembersWithBirthDate(ctx)
	if err != nil {
		return nil, err
	}

	today := r.now()
	birthdays := make([]BirthdayEntry, 0, len(members))
	for _, m := range members {
		if m.BirthDate == nil {
			continue
		}
		bd, ok := parseDate(*m.BirthDate)
		if !ok {
			continue
		}
		if month != 0 && int(bd.Month()) != month {
			continue
		}

		age := today.Year() - bd.Year()
		if today.Month() < bd.Month() || (today.Month() == bd.Month() && today.Day() < bd.Day()) {
			age--
		}

		birthdays = append(birthdays, BirthdayEntry{
			MemberID:    m.OriginalID,
			PIB:         m.PIB,
			BirthDate:   *m.BirthDate,
			Day:         bd.Day(),
			Month:       int(bd.Month()),
			Age:         age,
			PhoneMobile: m.PhoneMobile,
			Gender:      m.Gender,
			PhotoURL:    m.PhotoURL,
		})
	}

	sort.SliceStable(birthdays, func(i, j int) bool { return birthdays[i].Day < birthdays[j].Day })
	return birthdays, nil
}

// UpcomingBirthdays lists birthdays occurring within the next `days` days,
// today included. Age here is the age the member turns at the occurrence
// (occurrence year minus birth year) — deliberately a different formula than
// the one in Birthdays, matching the two legacy call sites.
func (r *Registry) UpcomingBirthdays(ctx context.Context, days int) ([]UpcomingBirthday, error) {
	members, err := r.activeMembersWithBirthDate(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := make([]UpcomingBirthday, 0, len(members))
	for _, m := range members {
		if m.BirthDate == nil {
			continue
		}
		bd, ok := parseDate(*m.BirthDate)
		if !ok {
			continue
		}

		occurrence := time.Date(today.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
		if occurrence.Before(today) {
			occurrence = time.Date(today.Year()+1, bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
		}
		daysUntil := int(occurrence.Sub(today).Hours() / 24)
		if daysUntil > days {
			continue
		}

		upcoming = append(upcoming, UpcomingBirthday{
			MemberID:     m.OriginalID,
			PIB:          m.PIB,
			BirthDate:    *m.BirthDate,
			BirthdayDate: occurrence.Format("2006-01-02"),
			DaysUntil:    daysUntil,
			Age:          occurrence.Year() - bd.Year(),
			PhoneMobile:  m.PhoneMobile,
			Gender:       m.Gender,
			PhotoURL:     m.PhotoURL,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DaysUntil < upcoming[j].DaysUntil })
	return upcoming, nil
}
