package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// DistrictHandler serves district and leadership listings.
type DistrictHandler struct {
	Store store.Store
}

func NewDistrictHandler(s store.Store) *DistrictHandler {
	return &DistrictHandler{Store: s}
}

// List returns districts ordered by number, with leader names resolved from
// the member collection at read time.
func (h *DistrictHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var districts []models.District
	err := h.Store.Find(ctx, store.Districts, bson.M{}, &store.FindOptions{
		Sort:  bson.D{{Key: "number", Value: 1}},
		Limit: 100,
	}, &districts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch districts"})
		return
	}

	for i := range districts {
		var leader struct {
			PIB string `bson:"pib"`
		}
		err := h.Store.FindOne(ctx, store.Members, bson.M{"original_id": districts[i].LeaderID}, &store.FindOptions{
			Projection: bson.M{"_id": 0, "pib": 1},
		}, &leader)
		if err == nil {
			districts[i].LeaderName = leader.PIB
		} else if !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch districts"})
			return
		}
	}
	c.JSON(http.StatusOK, districts)
}

type leadershipEntry struct {
	ID          int           `json:"id"`
	Member      models.Member `json:"member"`
	PresbyterID *int          `json:"presbyter_id,omitempty"`
}

// Leadership returns presbyters and deacons with their member records
// embedded. Entries whose member record is missing are dropped.
func (h *DistrictHandler) Leadership(c *gin.Context) {
	ctx := c.Request.Context()

	var presbyters []models.Presbyter
	if err := h.Store.Find(ctx, store.Presbyters, bson.M{}, &store.FindOptions{Limit: 100}, &presbyters); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch leadership"})
		return
	}
	presbyterList := make([]leadershipEntry, 0, len(presbyters))
	for _, p := range presbyters {
		var member models.Member
		if err := h.Store.FindOne(ctx, store.Members, bson.M{"original_id": p.MemberID}, nil, &member); err != nil {
			continue
		}
		presbyterList = append(presbyterList, leadershipEntry{ID: p.OriginalID, Member: member})
	}

	var deacons []models.Deacon
	if err := h.Store.Find(ctx, store.Deacons, bson.M{}, &store.FindOptions{Limit: 100}, &deacons); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch leadership"})
		return
	}
	deaconList := make([]leadershipEntry, 0, len(deacons))
	for _, d := range deacons {
		var member models.Member
		if err := h.Store.FindOne(ctx, store.Members, bson.M{"original_id": d.MemberID}, nil, &member); err != nil {
			continue
		}
		deaconList = append(deaconList, leadershipEntry{ID: d.OriginalID, Member: member, PresbyterID: d.PresbyterID})
	}

	c.JSON(http.StatusOK, gin.H{
		"presbyters": presbyterList,
		"deacons":    deaconList,
	})
}
