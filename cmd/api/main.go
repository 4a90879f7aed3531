package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"updatesfeed/cmd/app"
	"updatesfeed/internal/config"
	handlers "updatesfeed/internal/handler"
	"updatesfeed/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.Backend == "live" && cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set in the .env file")
	}

	db, st, services, gate := app.App(cfg)
	if db != nil {
		defer db.CloseDB()
	}

	handler := handlers.NewHandlers(services, st, gate, db, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	router.HandleFunc("/updates", handler.GetUpdates).Methods(http.MethodGet)

	router.HandleFunc("/api/feed", handler.GetFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/session", handler.GetSession).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", handler.Logout).Methods(http.MethodPost)

	router.HandleFunc("/api/admin/rows", handler.ListImageRows).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/rows", handler.AddImageRow).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/rows/{id}", handler.UpdateImageRow).Methods(http.MethodPut)
	router.HandleFunc("/api/admin/rows/{id}", handler.RemoveImageRow).Methods(http.MethodDelete)

	router.HandleFunc("/api/admin/preview", handler.Preview).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/publish", handler.Publish).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/export", handler.Export).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Server listening on %s (backend: %s)\n", addr, cfg.Backend)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
