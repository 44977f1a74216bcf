package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/KIFUA/Church-Buses/config"
	"github.com/KIFUA/Church-Buses/internal/auth"
	"github.com/KIFUA/Church-Buses/internal/registry"
	"github.com/KIFUA/Church-Buses/internal/routes"
	"github.com/KIFUA/Church-Buses/internal/store"
)

func main() {
	cfg := config.Load()

	client, db, err := config.ConnectMongo(cfg)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	slog.Info("Connected to MongoDB", "database", cfg.DBName)

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		slog.Error("failed to create uploads directory", "dir", cfg.UploadsDir, "error", err)
		os.Exit(1)
	}

	s := store.NewMongo(db)
	deps := routes.Deps{
		Cfg:      cfg,
		Store:    s,
		Registry: registry.New(s),
		Tokens:   auth.NewTokenIssuer(cfg.SecretKey),
		RDB:      config.ConnectRedis(cfg),
	}

	r := gin.Default()
	routes.Setup(r, deps)

	slog.Info("Starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
