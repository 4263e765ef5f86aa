package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mentesana-server/auth"
	"mentesana-server/cache"
	"mentesana-server/confs"
	"mentesana-server/db"
	"mentesana-server/handlers"
	httpHandler "mentesana-server/handlers/http"
	"mentesana-server/logger"
	"mentesana-server/metrics"
	"mentesana-server/middleware"
	"mentesana-server/services"
	"mentesana-server/usecases"
	"mentesana-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const catalogRefreshInterval = 10 * time.Minute

type Server struct {
	app      *gin.Engine
	db       db.Database
	cfg      *confs.Config
	catalogs *services.CatalogService
	limiter  *middleware.RateLimiter
	manager  *ws.Manager
}

func NewServer(cfg *confs.Config, database db.Database) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		app:      gin.New(),
		db:       database,
		cfg:      cfg,
		catalogs: services.NewCatalogService(database, cache.NewCatalogCache(catalogRefreshInterval), catalogRefreshInterval),
		limiter:  middleware.NewRateLimiter(cfg.AuthRatePerSec, cfg.AuthRateBurst),
		manager:  ws.NewManager(),
	}
	s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.app }

func (s *Server) routes() {
	s.app.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Metrics())

	// Setup CORS middleware
	config := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) > 0 {
		config.AllowOrigins = s.cfg.CORSOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	s.app.Use(cors.New(config))

	tokens := auth.NewTokenIssuer(s.cfg.JWTSecret, s.cfg.TokenTTL)
	loc := s.cfg.Location()

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(s.db, tokens, auth.NewHasher())
	exerciseUseCase := usecases.NewExerciseUseCase(s.db, s.manager)
	challengeUseCase := usecases.NewChallengeUseCase(s.db)
	emotionUseCase := usecases.NewEmotionUseCase(s.db, loc)
	petUseCase := usecases.NewPetUseCase(s.db, s.manager)
	profileUseCase := usecases.NewProfileUseCase(s.db)
	statsUseCase := usecases.NewStatsUseCase(s.db, loc)
	healthUseCase := usecases.NewHealthUseCase(s.db)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	exerciseHandler := httpHandler.NewExerciseHandler(exerciseUseCase, s.catalogs)
	challengeHandler := httpHandler.NewChallengeHandler(challengeUseCase)
	emotionHandler := httpHandler.NewEmotionHandler(emotionUseCase, s.catalogs)
	petHandler := httpHandler.NewPetHandler(petUseCase, s.catalogs)
	profileHandler := httpHandler.NewProfileHandler(profileUseCase)
	statsHandler := httpHandler.NewStatsHandler(statsUseCase, healthUseCase)
	cacheHandler := handlers.NewCacheHandler(s.catalogs)
	wsHandler := handlers.NewWSHandler(s.manager, tokens, s.cfg.CORSOrigins)

	s.app.GET("/health", statsHandler.Health)
	s.app.GET("/metrics", gin.WrapH(metrics.Handler()))
	s.app.GET("/ws", wsHandler.HandleUserWS)

	api := s.app.Group("/api")
	api.GET("/health", statsHandler.Health)

	// Auth routes
	authGroup := api.Group("/auth", s.limiter.Handler())
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Public catalogs
	api.GET("/exercises", exerciseHandler.ListExercises)
	api.GET("/ejercicios", exerciseHandler.ListExercises)
	api.GET("/emotions", emotionHandler.ListEmotions)
	api.GET("/emociones", emotionHandler.ListEmotions)
	api.GET("/pets/species", petHandler.ListSpecies)
	api.GET("/mascotas", petHandler.ListSpecies)

	// Profile save is open; the web client posts it right after register
	api.POST("/profile", profileHandler.Save)
	api.POST("/profile/save", profileHandler.Save)
	api.POST("/perfil/guardar", profileHandler.Save)

	private := api.Group("", middleware.Auth(tokens))
	{
		private.POST("/exercises/complete", exerciseHandler.Complete)
		private.POST("/ejercicios/completar", exerciseHandler.Complete)
		private.POST("/exercises/gratitude", exerciseHandler.Gratitude)
		private.POST("/ejercicios/gratitud", exerciseHandler.Gratitude)

		private.GET("/challenges", challengeHandler.List)
		private.POST("/challenges", challengeHandler.Create)
		private.PUT("/challenges/:id", challengeHandler.Update)
		private.DELETE("/challenges/:id", challengeHandler.Delete)
		private.GET("/retos", challengeHandler.List)
		private.POST("/retos", challengeHandler.Create)
		private.PUT("/retos/:id", challengeHandler.Update)
		private.DELETE("/retos/:id", challengeHandler.Delete)

		private.POST("/emotions/log", emotionHandler.Log)
		private.POST("/emociones/registrar", emotionHandler.Log)
		private.GET("/emotions/history", emotionHandler.History)
		private.GET("/emociones/usuario", emotionHandler.History)
		private.GET("/calendar/emotions", emotionHandler.Calendar)
		private.GET("/calendario/emociones", emotionHandler.Calendar)

		private.GET("/pets/current", petHandler.Current)
		private.GET("/pet/current", petHandler.Current)
		private.GET("/mascota/actual", petHandler.Current)
		private.POST("/pets/select", petHandler.Select)
		private.POST("/pet/select", petHandler.Select)
		private.POST("/mascota/seleccionar", petHandler.Select)
		private.PUT("/pets/stats", petHandler.Update)
		private.PUT("/pet/update", petHandler.Update)
		private.PUT("/mascota/actualizar", petHandler.Update)
		private.POST("/mascota/actualizar", petHandler.Update)

		private.GET("/stats/summary", statsHandler.Summary)
		private.GET("/estadisticas/generales", statsHandler.Summary)

		private.GET("/profile", profileHandler.Get)
		private.GET("/perfil", profileHandler.Get)

		private.GET("/realtime/status", wsHandler.GetConnectionStatus)

		// Cache management endpoints
		private.GET("/cache/stats", cacheHandler.GetCacheStats)
		private.POST("/cache/refresh", cacheHandler.RefreshCache)
	}

	s.static()

	s.app.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}

// static serves the web client and its media when the folders exist.
func (s *Server) static() {
	taken := map[string]bool{"api": true, "ws": true, "health": true, "metrics": true}
	if dirExists(s.cfg.MediaDir) {
		media := filepath.Base(s.cfg.MediaDir)
		s.app.Static("/"+media, s.cfg.MediaDir)
		taken[media] = true
	}
	if !dirExists(s.cfg.StaticDir) {
		return
	}
	index := filepath.Join(s.cfg.StaticDir, "index.html")
	s.app.GET("/", func(c *gin.Context) { c.File(index) })
	entries, err := os.ReadDir(s.cfg.StaticDir)
	if err != nil {
		logger.Warn("cannot list static dir", "dir", s.cfg.StaticDir, "err", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		if name == "index.html" || taken[name] {
			continue
		}
		if e.IsDir() {
			s.app.Static("/"+name, filepath.Join(s.cfg.StaticDir, name))
		} else {
			s.app.StaticFile("/"+name, filepath.Join(s.cfg.StaticDir, name))
		}
	}
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Run serves HTTP until ctx ends, then shuts down within the configured
// timeout. Background workers stop with ctx.
func (s *Server) Run(ctx context.Context) error {
	if err := s.catalogs.Refresh(ctx); err != nil {
		logger.Warn("initial catalog load failed", "err", err)
	}
	s.catalogs.Start(ctx)
	s.limiter.StartCleanup(time.Minute, ctx.Done())

	srv := &http.Server{
		Addr:              "0.0.0.0:" + s.cfg.Port,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	logger.Info("server listening", "addr", srv.Addr, "engine", s.db.Engine(), "production", s.cfg.IsProduction())
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
