package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KIFUA/Church-Buses/internal/registry"
)

// StatisticsHandler serves the global statistics snapshot.
type StatisticsHandler struct {
	Registry *registry.Registry
}

func NewStatisticsHandler(r *registry.Registry) *StatisticsHandler {
	return &StatisticsHandler{Registry: r}
}

func (h *StatisticsHandler) Get(c *gin.Context) {
	stats, err := h.Registry.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
