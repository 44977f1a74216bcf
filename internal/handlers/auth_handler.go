package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/auth"
	"github.com/KIFUA/Church-Buses/internal/middleware"
	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// AuthHandler serves registration, login and the current-user endpoint.
type AuthHandler struct {
	Store  store.Store
	Tokens *auth.TokenIssuer
}

func NewAuthHandler(s store.Store, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{Store: s, Tokens: tokens}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the user shape embedded in token responses. It never
// carries the password hash.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	MemberID *int   `json:"member_id"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// Register creates a user account. The very first account ever created is
// force-promoted to admin regardless of the requested role; everyone after
// that gets the role they asked for (default "user").
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}
	if !models.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	ctx := c.Request.Context()
	var existing models.User
	if err := h.Store.FindOne(ctx, store.Users, bson.M{"username": input.Username}, nil, &existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	count, err := h.Store.Count(ctx, store.Users, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
		return
	}
	role := input.Role
	if count == 0 {
		role = models.RoleAdmin
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         role,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Store.Insert(ctx, store.Users, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
		return
	}
	slog.Info("user registered", "username", user.Username, "role", user.Role)

	h.respondWithToken(c, user)
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var user models.User
	err := h.Store.FindOne(c.Request.Context(), store.Users, bson.M{"username": input.Username}, nil, &user)
	if err != nil || !auth.CheckPassword(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.respondWithToken(c, user)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user models.User) {
	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token"})
		return
	}
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        userResponse(user),
	})
}

func userResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		MemberID: user.MemberID,
	}
}
