package routes

import (
	"log"

	"github.com/farukalways/freelancing-platform-create/internal/config"
	"github.com/farukalways/freelancing-platform-create/internal/database"
	"github.com/farukalways/freelancing-platform-create/internal/delivery/http/handler"
	"github.com/farukalways/freelancing-platform-create/internal/delivery/http/middleware"
	"github.com/farukalways/freelancing-platform-create/internal/pkg/token"
	"github.com/farukalways/freelancing-platform-create/internal/repository"
	"github.com/farukalways/freelancing-platform-create/internal/usecase"
	"github.com/farukalways/freelancing-platform-create/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry wires repositories, usecases and handlers onto the route table.
// Paths are fixed and unversioned; the frontend depends on them verbatim.
type Registry struct {
	root *handler.RootHandler
	auth *handler.AuthHandler
	jobs *handler.JobHandler
	bids *handler.BidHandler
	sock *ws.Handler
}

func NewRegistry(cfg config.Config, db database.DB, cache usecase.SearchCache, hub *ws.Hub, logger *log.Logger) *Registry {
	tokens := token.NewHMACService(cfg.Auth.SecretKey, cfg.Auth.TokenValidity)
	authMw := middleware.NewAuthMiddleware(tokens)

	jobRepo := repository.NewPostgresJobRepository(db)
	bidRepo := repository.NewPostgresBidRepository(db)

	jobUC := usecase.NewJobUsecase(jobRepo, cache, logger)
	bidUC := usecase.NewBidUsecase(bidRepo, cache, ws.NewNotifier(hub), logger)

	return &Registry{
		root: handler.NewRootHandler(),
		auth: handler.NewAuthHandler(tokens, cfg.App.IsProduction()),
		jobs: handler.NewJobHandler(jobUC, authMw),
		bids: handler.NewBidHandler(bidUC, authMw),
		sock: ws.NewHandler(hub, logger),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.root.RegisterRoutes(app)
	r.auth.RegisterRoutes(app)
	r.jobs.RegisterRoutes(app)
	r.bids.RegisterRoutes(app)
	app.Get("/ws", r.sock.HandleBidEvents)
}
