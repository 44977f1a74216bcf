package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/middleware"
	"github.com/KIFUA/Church-Buses/internal/registry"
	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// EventHandler serves event CRUD. Events are hard-deleted, unlike members.
type EventHandler struct {
	Store store.Store
}

func NewEventHandler(s store.Store) *EventHandler {
	return &EventHandler{Store: s}
}

type EventCreateInput struct {
	Title             string  `json:"title" binding:"required"`
	Description       string  `json:"description"`
	EventDate         string  `json:"event_date" binding:"required"`
	EventTime         *string `json:"event_time"`
	EventType         string  `json:"event_type"`
	Location          string  `json:"location"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurrencePattern *string `json:"recurrence_pattern"`
}

type EventUpdateInput struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	EventDate         *string `json:"event_date"`
	EventTime         *string `json:"event_time"`
	EventType         *string `json:"event_type"`
	Location          *string `json:"location"`
	IsRecurring       *bool   `json:"is_recurring"`
	RecurrencePattern *string `json:"recurrence_pattern"`
}

// List returns events, optionally narrowed to one month when both month and
// year are given. Sorted ascending by date.
func (h *EventHandler) List(c *gin.Context) {
	query := bson.M{}
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	if month >= 1 && month <= 12 && year != 0 {
		start, end := registry.MonthRange(year, month)
		query["event_date"] = bson.M{"$gte": start, "$lt": end}
	}

	var events []models.Event
	err := h.Store.Find(c.Request.Context(), store.Events, query, &store.FindOptions{
		Sort:  bson.D{{Key: "event_date", Value: 1}},
		Limit: 500,
	}, &events)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var input EventCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if input.EventType == "" {
		input.EventType = "general"
	}

	user, _ := middleware.CurrentUser(c)
	event := models.Event{
		ID:                uuid.NewString(),
		Title:             input.Title,
		Description:       input.Description,
		EventDate:         input.EventDate,
		EventTime:         input.EventTime,
		EventType:         input.EventType,
		Location:          input.Location,
		IsRecurring:       input.IsRecurring,
		RecurrencePattern: input.RecurrencePattern,
		CreatedBy:         user.ID,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Store.Insert(c.Request.Context(), store.Events, event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var input EventUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	patch := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			patch[key] = *v
		}
	}
	setString("title", input.Title)
	setString("description", input.Description)
	setString("event_date", input.EventDate)
	setString("event_time", input.EventTime)
	setString("event_type", input.EventType)
	setString("location", input.Location)
	setString("recurrence_pattern", input.RecurrencePattern)
	if input.IsRecurring != nil {
		patch["is_recurring"] = *input.IsRecurring
	}

	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data to update"})
		return
	}

	matched, err := h.Store.Update(c.Request.Context(), store.Events, bson.M{"id": c.Param("id")}, bson.M{"$set": patch})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update event"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated"})
}

func (h *EventHandler) Delete(c *gin.Context) {
	deleted, err := h.Store.Delete(c.Request.Context(), store.Events, bson.M{"id": c.Param("id")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete event"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
