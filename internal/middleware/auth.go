// Package middleware provides the HTTP middleware chain: authentication and
// role gates, CORS and request metrics.
package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/KIFUA/Church-Buses/internal/auth"
	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const userCacheTTL = 10 * time.Minute

// contextUserKey is where the authenticated user lands in the gin context.
const contextUserKey = "current_user"

// Auth validates the bearer token and loads the authenticated user into the
// request context. The user document is served from Redis when a client is
// configured (cache-aside, 10 minute TTL); a nil rdb falls through to the
// store on every request.
func Auth(s store.Store, tokens *auth.TokenIssuer, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization token not provided")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "Invalid Authorization header format")
			return
		}

		userID, err := tokens.Parse(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		cacheKey := fmt.Sprintf("user:%s:data", userID)
		if rdb != nil {
			cached, err := rdb.Get(c.Request.Context(), cacheKey).Result()
			if err == nil {
				var user models.User
				if json.Unmarshal([]byte(cached), &user) == nil {
					c.Set(contextUserKey, user)
					c.Next()
					return
				}
				slog.Warn("failed to unmarshal cached user", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("redis GET failed", "error", err, "user_id", userID)
			}
		}

		var user models.User
		if err := s.FindOne(c.Request.Context(), store.Users, bson.M{"id": userID}, nil, &user); err != nil {
			abortUnauthorized(c, "User not found")
			return
		}

		if rdb != nil {
			if data, err := json.Marshal(user); err == nil {
				if err := rdb.Set(c.Request.Context(), cacheKey, data, userCacheTTL).Err(); err != nil {
					slog.Error("failed to cache user", "error", err, "user_id", userID)
				}
			}
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// InvalidateUserCache drops the cached user document, used after role
// changes so the new role takes effect without waiting out the TTL.
func InvalidateUserCache(c *gin.Context, rdb *redis.Client, userID string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(c.Request.Context(), fmt.Sprintf("user:%s:data", userID)).Err(); err != nil {
		slog.Error("failed to invalidate user cache", "error", err, "user_id", userID)
	}
}

// RequireEditor gates write operations on members and events.
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !models.IsEditor(user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Editor access required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates user management and member deactivation.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
