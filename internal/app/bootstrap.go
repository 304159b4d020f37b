package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/farukalways/freelancing-platform-create/internal/config"
	"github.com/farukalways/freelancing-platform-create/internal/delivery/http/middleware"
	"github.com/farukalways/freelancing-platform-create/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, cfg, logger)
	routes.NewRegistry(cfg, c.DB, c.Cache, c.Hub, logger).Register(f)

	go c.Hub.Run()

	if err := c.Reconciler.Start(context.Background()); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	cleanup := func() error { return c.Close() }
	return &App{Fiber: f, Container: c}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	if origin := strings.TrimSpace(cfg.App.CORSOrigin); origin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     []string{origin},
			AllowCredentials: true,
		}))
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
