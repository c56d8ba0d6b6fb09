package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/resumepilot/resumepilot/internal/api/handlers"
	appMiddleware "github.com/resumepilot/resumepilot/internal/api/middlewares"
	"github.com/resumepilot/resumepilot/internal/config"
	"github.com/resumepilot/resumepilot/internal/core"
	db "github.com/resumepilot/resumepilot/internal/core/database"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, objects core.ObjectClient, store *db.DynamoClient, ingest *services.IngestService, analysis *services.AnalysisService, chat *services.ChatService) *Server {
	docHandler := handlers.NewDocumentHandler(objects, store, store, ingest, analysis, cfg)
	eventHandler := handlers.NewEventHandler(ingest)
	chatHandler := handlers.NewChatHandler(chat)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		// Storage notifications arrive unauthenticated from the bucket.
		api.Post("/events/s3", eventHandler.HandleS3Event)

		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware(cfg.JWTSecret))
			protected.Post("/documents/upload", docHandler.UploadDocument)
			protected.Get("/resumes", docHandler.ListResumes)
			protected.Get("/resumes/{resumeID}", docHandler.GetResume)
			protected.Get("/resumes/{resumeID}/analyses", docHandler.ListAnalyses)
			protected.Post("/resumes/{resumeID}/analyze", docHandler.AnalyzeResume)
			protected.Post("/resumes/{resumeID}/chat", chatHandler.SendMessage)
			protected.Get("/resumes/{resumeID}/chat", chatHandler.GetHistory)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
