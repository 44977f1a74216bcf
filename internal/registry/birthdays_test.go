package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

var birthdaysNow = time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC)

func seedBirthdayMembers(t *testing.T, mem *store.Mem) {
	t.Helper()
	seed(t, mem, store.Members,
		activeMember(1, "Червнева Рання", strptr("1990-06-10T00:00:00")),
		activeMember(2, "Червнева Пізня", strptr("1991-06-20T00:00:00")),
		activeMember(3, "Березнева", strptr("1985-03-05T00:00:00")),
		activeMember(4, "Без дати", nil),
		models.Member{OriginalID: 5, PIB: "Вибула", BirthDate: strptr("1990-06-12T00:00:00"), IsActive: false},
	)
}

func TestBirthdaysMonthFilter(t *testing.T) {
	r, mem := testRegistry(birthdaysNow)
	seedBirthdayMembers(t, mem)

	list, err := r.Birthdays(context.Background(), 6)
	require.NoError(t, err)

	// Only active June members; no-date and inactive members are excluded.
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].MemberID)
	assert.Equal(t, 2, list[1].MemberID)

	// June 10 already passed, so that member turned 36; June 20 has not, so
	// that member is still 34.
	assert.Equal(t, 36, list[0].Age)
	assert.Equal(t, 34, list[1].Age)
}

func TestBirthdaysSortedByDayAcrossMonths(t *testing.T) {
	r, mem := testRegistry(birthdaysNow)
	seedBirthdayMembers(t, mem)

	list, err := r.Birthdays(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// The list orders by day of month only, so the March 5 entry comes before
	// both June entries.
	assert.Equal(t, []int{5, 10, 20}, []int{list[0].Day, list[1].Day, list[2].Day})
	assert.Equal(t, 3, list[0].MemberID)
}

func TestUpcomingBirthdaysWindow(t *testing.T) {
	r, mem := testRegistry(birthdaysNow)
	seed(t, mem, store.Members,
		activeMember(1, "Сьогодні", strptr("1990-06-15T00:00:00")),
		activeMember(2, "Через п'ять днів", strptr("1991-06-20T00:00:00")),
		activeMember(3, "Через вісім днів", strptr("1992-06-23T00:00:00")),
		activeMember(4, "Вже минув", strptr("1993-06-10T00:00:00")),
	)

	list, err := r.UpcomingBirthdays(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// A birthday today counts with zero days remaining.
	assert.Equal(t, 1, list[0].MemberID)
	assert.Equal(t, 0, list[0].DaysUntil)
	assert.Equal(t, "2026-06-15", list[0].BirthdayDate)
	assert.Equal(t, 36, list[0].Age)

	assert.Equal(t, 2, list[1].MemberID)
	assert.Equal(t, 5, list[1].DaysUntil)
	assert.Equal(t, 35, list[1].Age)
}

func TestUpcomingBirthdaysYearRollover(t *testing.T) {
	// December 30: a January 2 birthday is three days out, across the year
	// boundary.
	r, mem := testRegistry(time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC))
	seed(t, mem, store.Members,
		activeMember(1, "Новорічна", strptr("2000-01-02T00:00:00")),
	)

	list, err := r.UpcomingBirthdays(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].DaysUntil)
	assert.Equal(t, "2027-01-02", list[0].BirthdayDate)
	assert.Equal(t, 27, list[0].Age)
}
