package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// ChurchHandler serves the congregation info endpoints, including the only
// fully public surface of the API.
type ChurchHandler struct {
	Store store.Store
}

func NewChurchHandler(s store.Store) *ChurchHandler {
	return &ChurchHandler{Store: s}
}

func (h *ChurchHandler) info(c *gin.Context) (models.ChurchInfo, bool) {
	var info models.ChurchInfo
	err := h.Store.FindOne(c.Request.Context(), store.ChurchInfo, bson.M{}, nil, &info)
	if errors.Is(err, store.ErrNotFound) {
		return models.DefaultChurchInfo(), true
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch church info"})
		return models.ChurchInfo{}, false
	}
	return info, true
}

// Info returns the church info document, or a built-in default before the
// import has run.
func (h *ChurchHandler) Info(c *gin.Context) {
	info, ok := h.info(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, info)
}

// PublicInfo is the unauthenticated summary: church info plus headline
// counts.
func (h *ChurchHandler) PublicInfo(c *gin.Context) {
	info, ok := h.info(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	activeMembers, err := h.Store.Count(ctx, store.Members, bson.M{"is_active": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch public info"})
		return
	}
	districts, err := h.Store.Count(ctx, store.Districts, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch public info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"info": info,
		"stats": gin.H{
			"active_members": activeMembers,
			"districts":      districts,
		},
	})
}
