// Package server exposes the domain stores over a Gin HTTP API. All
// routes sit behind the bearer-token gate; static assets are served
// through a version-tagged offline cache.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/internal/config"
	"github.com/rosterly/shiftroster/pkg/core/services"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

// Server wires the stores and config into a Gin engine
type Server struct {
	cfg    *config.Config
	reg    *store.Registry
	logger *zap.Logger
	engine *gin.Engine
	assets *assetCache
}

// New builds the engine and registers all routes
func New(cfg *config.Config, reg *store.Registry, logger *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{cfg: cfg, reg: reg, logger: logger, engine: engine}

	if cfg.AssetDir != "" {
		assets, err := newAssetCache(cfg.AssetDir, cfg.AssetVersion, logger)
		if err != nil {
			return nil, err
		}
		s.assets = assets
		engine.GET("/assets/*filepath", s.serveAsset)
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(authMiddleware(cfg.AuthTokens))

	api.GET("/stats", s.getStats)

	people := api.Group("/people")
	people.GET("", s.listPeople)
	people.POST("", s.createPerson)
	people.PATCH("/:id", s.updatePerson)
	people.DELETE("/:id", s.deletePerson)

	roles := api.Group("/roles")
	roles.GET("", s.listRoles)
	roles.POST("", s.createRole)
	roles.PATCH("/:id", s.updateRole)
	roles.DELETE("/:id", s.deleteRole)

	groups := api.Group("/groups")
	groups.GET("", s.listGroups)
	groups.POST("", s.createGroup)
	groups.PATCH("/:id", s.updateGroup)
	groups.DELETE("/:id", s.deleteGroup)

	leaves := api.Group("/leaves")
	leaves.GET("", s.listLeaves)
	leaves.POST("", s.createLeave)
	leaves.PATCH("/:id", s.updateLeave)
	leaves.DELETE("/:id", s.deleteLeave)
	leaves.POST("/:id/approve", s.approveLeave)
	leaves.POST("/:id/reject", s.rejectLeave)

	templates := api.Group("/templates")
	templates.GET("", s.listTemplates)
	templates.POST("", s.createTemplate)
	templates.PATCH("/:id", s.updateTemplate)
	templates.DELETE("/:id", s.deleteTemplate)

	rosters := api.Group("/rosters")
	rosters.GET("", s.listRosters)
	rosters.POST("", s.createRoster)
	rosters.PATCH("/:id", s.updateRoster)
	rosters.DELETE("/:id", s.deleteRoster)
	rosters.GET("/:id/shifts", s.listRosterShifts)
	rosters.POST("/:id/shifts", s.createRosterShift)
	rosters.POST("/:id/generate", s.generateShifts)

	rosterShifts := api.Group("/roster-shifts")
	rosterShifts.PATCH("/:id", s.updateRosterShift)
	rosterShifts.DELETE("/:id", s.deleteRosterShift)
	rosterShifts.GET("/:id/roles/:roleEntryId/eligible", s.listEligible)
	rosterShifts.POST("/:id/roles/:roleEntryId/assignments", s.assignPerson)
	rosterShifts.DELETE("/:id/roles/:roleEntryId/assignments/:personId", s.removePerson)

	shifts := api.Group("/shifts")
	shifts.GET("", s.listShifts)
	shifts.POST("", s.createShift)
	shifts.PATCH("/:id", s.updateShift)
	shifts.DELETE("/:id", s.deleteShift)
	shifts.POST("/roles/:roleEntryId/assignments", s.assignShiftPerson)
	shifts.DELETE("/roles/:roleEntryId/assignments/:personId", s.removeShiftPerson)

	return s, nil
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.ListenAddr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, services.Stats(s.reg, time.Now()))
}
