// Package server wires the application together: database, file store,
// services, handlers, routes, and graceful shutdown. It is the only
// place the dependency graph is assembled.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/auth"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/config"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/handler"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/middleware"
	sqliteRepo "github.com/jfmario/CSCIA591-VibeNotes2/internal/repository/sqlite"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/service"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/storage"
)

// Server owns the router and the resources that need closing on
// shutdown (the database connection).
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
// DB and file store → services → handlers → routes.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	files, err := storage.New(cfg.AvatarDir, cfg.AttachmentDir, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing file storage: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(files, tokens)

	logger.Info("storage roots ready",
		slog.String("avatars", files.Root(storage.CategoryAvatar)),
		slog.String("attachments", files.Root(storage.CategoryAttachment)),
	)

	return s, nil
}

func (s *Server) setupRoutes(files *storage.Store, tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	userService := service.NewUserService(s.db, files, s.logger)
	noteService := service.NewNoteService(s.db, s.db, s.db, files, s.logger)
	attachmentService := service.NewAttachmentService(s.db, s.db, files, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.config.MaxUploadBytes, s.logger)
	noteHandler := handler.NewNoteHandler(noteService, s.logger)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, s.config.MaxUploadBytes, s.logger)
	avatarHandler := handler.NewAvatarHandler(files, s.logger)

	// Public routes: auth endpoints, public note listings, and avatar
	// images (public by design, traversal-checked in the handler).
	s.router.Post("/api/auth/register", authHandler.HandleRegister)
	s.router.Post("/api/auth/login", authHandler.HandleLogin)
	s.router.Get("/api/public/users/{username}/notes", noteHandler.HandlePublicByUsername)
	s.router.Get("/uploads/avatars/{filename}", avatarHandler.HandleServe)

	// Everything below requires a valid bearer token.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.HandleList)
			r.Get("/profile", userHandler.HandleProfile)
			r.Put("/profile", userHandler.HandleUpdateProfile)
			r.Get("/{id}", userHandler.HandleGetByID)
		})

		r.Post("/api/upload/avatar", userHandler.HandleUploadAvatar)

		r.Route("/api/notes", func(r chi.Router) {
			r.Post("/", noteHandler.HandleCreate)
			r.Get("/", noteHandler.HandleList)
			r.Get("/{id}", noteHandler.HandleGetByID)
			r.Put("/{id}", noteHandler.HandleUpdate)
			r.Delete("/{id}", noteHandler.HandleDelete)

			r.Route("/{noteId}/attachments", func(r chi.Router) {
				r.Post("/", attachmentHandler.HandleUpload)
				r.Get("/", attachmentHandler.HandleList)
				r.Get("/{attachmentId}", attachmentHandler.HandleDownload)
				r.Delete("/{attachmentId}", attachmentHandler.HandleDelete)
			})
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests,
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
