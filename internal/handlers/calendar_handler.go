package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KIFUA/Church-Buses/internal/registry"
)

// CalendarHandler serves the birthday lists and the month calendar fold.
type CalendarHandler struct {
	Registry *registry.Registry
}

func NewCalendarHandler(r *registry.Registry) *CalendarHandler {
	return &CalendarHandler{Registry: r}
}

// Birthdays lists birthdays of active members, optionally for one month.
func (h *CalendarHandler) Birthdays(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	if month < 0 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	birthdays, err := h.Registry.Birthdays(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch birthdays"})
		return
	}
	c.JSON(http.StatusOK, birthdays)
}

// Upcoming lists birthdays within the next N days (1..30, default 7).
func (h *CalendarHandler) Upcoming(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 30 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 30"})
		return
	}

	upcoming, err := h.Registry.UpcomingBirthdays(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch upcoming birthdays"})
		return
	}
	c.JSON(http.StatusOK, upcoming)
}

// Month returns the by-day fold of events and birthdays for one month.
func (h *CalendarHandler) Month(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	cal, err := h.Registry.Calendar(c.Request.Context(), year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build calendar"})
		return
	}
	c.JSON(http.StatusOK, cal)
}
