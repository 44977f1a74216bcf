// Package routes wires the HTTP surface: public endpoints first, then the
// authenticated API group with its editor- and admin-gated subgroups.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/KIFUA/Church-Buses/config"
	"github.com/KIFUA/Church-Buses/internal/auth"
	"github.com/KIFUA/Church-Buses/internal/middleware"
	"github.com/KIFUA/Church-Buses/internal/registry"
	"github.com/KIFUA/Church-Buses/internal/store"
)

// Deps carries everything the handlers need, built once in main and
// injected here.
type Deps struct {
	Cfg      config.Config
	Store    store.Store
	Registry *registry.Registry
	Tokens   *auth.TokenIssuer
	RDB      *redis.Client
}

// Setup registers all application routes on the engine.
func Setup(r *gin.Engine, d Deps) {
	r.Use(middleware.CORS(d.Cfg.CORSOrigins))
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", d.Cfg.UploadsDir)

	api := r.Group("/api")

	// Public routes: registration, login and the church summary.
	RegisterAuthRoutes(api, d)

	// Everything else requires a valid bearer token.
	authed := api.Group("")
	authed.Use(middleware.Auth(d.Store, d.Tokens, d.RDB))
	RegisterAPIRoutes(authed, d)
}
