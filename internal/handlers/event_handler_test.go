package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIFUA/Church-Buses/models"
)

func TestEventCRUD(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "admin", "")

	w := doRequest(t, r, http.MethodPost, "/api/events", admin.AccessToken, gin.H{
		"title":      "Молодіжне зібрання",
		"event_date": "2026-09-05",
		"event_time": "18:00",
		"location":   "Молитовний дім",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var event models.Event
	decodeBody(t, w, &event)
	require.NotEmpty(t, event.ID)
	assert.Equal(t, "general", event.EventType)
	assert.Equal(t, admin.User.ID, event.CreatedBy)

	w = doRequest(t, r, http.MethodPut, "/api/events/"+event.ID, admin.AccessToken, gin.H{
		"title": "Перенесене зібрання",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/events", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []models.Event
	decodeBody(t, w, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Перенесене зібрання", events[0].Title)

	w = doRequest(t, r, http.MethodDelete, "/api/events/"+event.ID, admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Events are hard-deleted.
	w = doRequest(t, r, http.MethodDelete, "/api/events/"+event.ID, admin.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(t, r, http.MethodGet, "/api/events", admin.AccessToken, nil)
	decodeBody(t, w, &events)
	assert.Empty(t, events)
}

func TestEventListMonthFilter(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "admin", "")

	for _, date := range []string{"2026-09-05", "2026-09-28", "2026-10-01"} {
		w := doRequest(t, r, http.MethodPost, "/api/events", admin.AccessToken, gin.H{
			"title":      "Подія " + date,
			"event_date": date,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(t, r, http.MethodGet, "/api/events?year=2026&month=9", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []models.Event
	decodeBody(t, w, &events)
	require.Len(t, events, 2)
	assert.Equal(t, "2026-09-05", events[0].EventDate)
	assert.Equal(t, "2026-09-28", events[1].EventDate)
}

func TestEventUpdateValidation(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "admin", "")

	w := doRequest(t, r, http.MethodPut, "/api/events/no-such-id", admin.AccessToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/events/no-such-id", admin.AccessToken, gin.H{"title": "Нова назва"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventWriteRequiresEditor(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "admin", "")
	user := registerUser(t, r, "reader", "user")

	w := doRequest(t, r, http.MethodPost, "/api/events", user.AccessToken, gin.H{
		"title":      "Спроба",
		"event_date": "2026-09-05",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
