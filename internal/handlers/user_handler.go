package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/middleware"
	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// UserHandler serves admin-only user management. Users are hard-deleted.
type UserHandler struct {
	Store store.Store
	RDB   *redis.Client
}

func NewUserHandler(s store.Store, rdb *redis.Client) *UserHandler {
	return &UserHandler{Store: s, RDB: rdb}
}

// List returns all user accounts, password hashes excluded at the query
// level.
func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	err := h.Store.Find(c.Request.Context(), store.Users, bson.M{}, &store.FindOptions{
		Projection: bson.M{"_id": 0, "password_hash": 0},
		Limit:      100,
	}, &users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateRole changes a user's role. The cached user document is dropped so
// the new role applies immediately.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	role := c.Query("role")
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	userID := c.Param("id")
	matched, err := h.Store.Update(c.Request.Context(), store.Users, bson.M{"id": userID}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update role"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	middleware.InvalidateUserCache(c, h.RDB, userID)
	slog.Info("user role updated", "user_id", userID, "role", role)
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// Delete removes a user account. Admins cannot delete themselves.
func (h *UserHandler) Delete(c *gin.Context) {
	userID := c.Param("id")
	current, _ := middleware.CurrentUser(c)
	if userID == current.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
		return
	}

	deleted, err := h.Store.Delete(c.Request.Context(), store.Users, bson.M{"id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete user"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	middleware.InvalidateUserCache(c, h.RDB, userID)
	slog.Info("user deleted", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
