package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"contactbook/config"
	"contactbook/internal/auth"
	"contactbook/internal/contact"
	"contactbook/internal/user"
)

type Server struct {
	srv *http.Server
	log *zap.Logger
}

func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	authHandler *auth.JSONHandler,
	authMW *auth.Middleware,
	userHandler *user.JSONHandler,
	contactHandler *contact.JSONHandler,
) *Server {
	r := mux.NewRouter()
	r.Use(RequestLogger(log))
	r.Use(RateLimit(cfg.Server.RateLimitRPS))

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	auth.SetupRoutes(api, authHandler)

	protected := api.NewRoute().Subrouter()
	protected.Use(authMW.Authenticate)
	user.SetupRoutes(protected, userHandler)
	contact.SetupRoutes(protected, contactHandler)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(r)

	return &Server{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Run() error {
	s.log.Info("starting http server", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
