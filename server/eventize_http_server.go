package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type EventizeHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	addr            string
	allowedOrigins  []string
	shutdownTimeout time.Duration
}

func NewEventizeHttpServer(router *Router, muxRouter *mux.Router, port string, allowedOrigins []string, shutdownTimeout time.Duration) *EventizeHttpServer {
	return &EventizeHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		addr:            ":" + port,
		allowedOrigins:  allowedOrigins,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler registers the routes and wraps them in the CORS middleware.
func (s *EventizeHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.muxRouter)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *EventizeHttpServer) Start() {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[EventizeHttpServer] Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	<-stop
	log.Println("[EventizeHttpServer] Shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[EventizeHttpServer] Server exiting")
}
