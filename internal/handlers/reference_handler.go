package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// ReferenceHandler serves the lookup tables and service types.
type ReferenceHandler struct {
	Store store.Store
}

func NewReferenceHandler(s store.Store) *ReferenceHandler {
	return &ReferenceHandler{Store: s}
}

// Get returns the key→label map of one reference table.
func (h *ReferenceHandler) Get(c *gin.Context) {
	var ref models.ReferenceTable
	err := h.Store.FindOne(c.Request.Context(), store.ReferenceData, bson.M{"type": c.Param("type")}, nil, &ref)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reference type not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch reference data"})
		return
	}
	c.JSON(http.StatusOK, ref.Data)
}

// ServiceTypes lists all service types.
func (h *ReferenceHandler) ServiceTypes(c *gin.Context) {
	var types []models.ServiceType
	err := h.Store.Find(c.Request.Context(), store.ServiceTypes, bson.M{}, &store.FindOptions{Limit: 100}, &types)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch service types"})
		return
	}
	c.JSON(http.StatusOK, types)
}
