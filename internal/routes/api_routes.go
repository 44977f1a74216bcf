package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/KIFUA/Church-Buses/internal/handlers"
	"github.com/KIFUA/Church-Buses/internal/middleware"
)

// RegisterAPIRoutes registers the authenticated API. Reads need any role;
// member/event writes need an editor; member deactivation and user
// management need an admin.
func RegisterAPIRoutes(g *gin.RouterGroup, d Deps) {
	authHandler := handlers.NewAuthHandler(d.Store, d.Tokens)
	memberHandler := handlers.NewMemberHandler(d.Store, d.Registry, d.Cfg.UploadsDir)
	statsHandler := handlers.NewStatisticsHandler(d.Registry)
	referenceHandler := handlers.NewReferenceHandler(d.Store)
	districtHandler := handlers.NewDistrictHandler(d.Store)
	eventHandler := handlers.NewEventHandler(d.Store)
	calendarHandler := handlers.NewCalendarHandler(d.Registry)
	userHandler := handlers.NewUserHandler(d.Store, d.RDB)
	exportHandler := handlers.NewExportHandler(d.Store)

	g.GET("/auth/me", authHandler.Me)

	g.GET("/members", memberHandler.List)
	g.GET("/members/:id", memberHandler.Get)
	g.GET("/export/members", exportHandler.Members)

	g.GET("/statistics", statsHandler.Get)
	g.GET("/reference/:type", referenceHandler.Get)
	g.GET("/service-types", referenceHandler.ServiceTypes)
	g.GET("/districts", districtHandler.List)
	g.GET("/leadership", districtHandler.Leadership)

	g.GET("/birthdays", calendarHandler.Birthdays)
	g.GET("/birthdays/upcoming", calendarHandler.Upcoming)
	g.GET("/calendar/:year/:month", calendarHandler.Month)
	g.GET("/events", eventHandler.List)

	editor := g.Group("")
	editor.Use(middleware.RequireEditor())
	{
		editor.POST("/members", memberHandler.Create)
		editor.PUT("/members/:id", memberHandler.Update)
		editor.POST("/members/:id/photo", memberHandler.UploadPhoto)
		editor.DELETE("/members/:id/photo", memberHandler.DeletePhoto)

		editor.POST("/events", eventHandler.Create)
		editor.PUT("/events/:id", eventHandler.Update)
		editor.DELETE("/events/:id", eventHandler.Delete)
	}

	admin := g.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.DELETE("/members/:id", memberHandler.Deactivate)

		admin.GET("/users", userHandler.List)
		admin.PUT("/users/:id/role", userHandler.UpdateRole)
		admin.DELETE("/users/:id", userHandler.Delete)
	}
}
