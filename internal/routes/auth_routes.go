package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/KIFUA/Church-Buses/internal/handlers"
)

// RegisterAuthRoutes registers the routes reachable without a token.
func RegisterAuthRoutes(api *gin.RouterGroup, d Deps) {
	authHandler := handlers.NewAuthHandler(d.Store, d.Tokens)
	churchHandler := handlers.NewChurchHandler(d.Store)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/church/info", churchHandler.Info)
	api.GET("/public/info", churchHandler.PublicInfo)
}
