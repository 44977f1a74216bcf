package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIFUA/Church-Buses/internal/registry"
	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

func seedBirthdayMember(t *testing.T, mem *store.Mem, id int, pib, birthDate string) {
	t.Helper()
	require.NoError(t, mem.Insert(context.Background(), store.Members, models.Member{
		OriginalID: id, PIB: pib, Gender: "male", BirthDate: &birthDate, IsActive: true,
	}))
}

func TestBirthdaysEndpoint(t *testing.T) {
	r, mem := newTestServer(t)
	admin := registerUser(t, r, "admin", "")
	seedBirthdayMember(t, mem, 1, "Березневий", "1990-03-10T00:00:00")
	seedBirthdayMember(t, mem, 2, "Червневий", "1985-06-01T00:00:00")

	w := doRequest(t, r, http.MethodGet, "/api/birthdays?month=3", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []registry.BirthdayEntry
	decodeBody(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].MemberID)
	assert.Equal(t, 3, list[0].Month)

	w = doRequest(t, r, http.MethodGet, "/api/birthdays?month=13", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpcomingBirthdaysEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "admin", "")

	w := doRequest(t, r, http.MethodGet, "/api/birthdays/upcoming", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []registry.UpcomingBirthday
	decodeBody(t, w, &list)
	assert.Empty(t, list)

	w = doRequest(t, r, http.MethodGet, "/api/birthdays/upcoming?days=31", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(t, r, http.MethodGet, "/api/birthdays/upcoming?days=0", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarEndpoint(t *testing.T) {
	r, mem := newTestServer(t)
	admin := registerUser(t, r, "admin", "")
	seedBirthdayMember(t, mem, 1, "Червневий", "1985-06-07T00:00:00")
	require.NoError(t, mem.Insert(context.Background(), store.Events, models.Event{
		ID: "e1", Title: "Зібрання", EventDate: "2026-06-07",
	}))

	w := doRequest(t, r, http.MethodGet, "/api/calendar/2026/6", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cal registry.CalendarMonth
	decodeBody(t, w, &cal)
	assert.Equal(t, 2026, cal.Year)
	require.NotNil(t, cal.Data[7])
	assert.Len(t, cal.Data[7].Events, 1)
	assert.Len(t, cal.Data[7].Birthdays, 1)

	w = doRequest(t, r, http.MethodGet, "/api/calendar/2026/13", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(t, r, http.MethodGet, "/api/calendar/abcd/6", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatisticsEndpoint(t *testing.T) {
	r, mem := newTestServer(t)
	admin := registerUser(t, r, "admin", "")
	seedBirthdayMember(t, mem, 1, "Активний", "1990-01-01T00:00:00")

	w := doRequest(t, r, http.MethodGet, "/api/statistics", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats registry.Statistics
	decodeBody(t, w, &stats)
	assert.Equal(t, int64(1), stats.TotalMembers)
	assert.Equal(t, int64(1), stats.ActiveMembers)
	assert.Len(t, stats.AgeGroups, 6)
}
