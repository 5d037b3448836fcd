package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jihun2da/product-matching-system/internal/config"
	matchHnd "github.com/jihun2da/product-matching-system/internal/match/handler"
	"github.com/jihun2da/product-matching-system/internal/match/model"
	"github.com/jihun2da/product-matching-system/internal/middleware"
	"github.com/jihun2da/product-matching-system/server/http/handlers"
)

func NewRouter(cfg config.Config, matchCfg model.MatchConfig, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)
	r.Get("/config", matchHnd.ShowConfig(matchCfg, logger))

	r.Post("/match", matchHnd.Match(cfg, matchCfg, logger))
	r.Post("/match/annotate", matchHnd.Annotate(cfg, matchCfg, logger))

	return r
}
