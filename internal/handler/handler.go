package handlers

import (
	"github.com/go-playground/validator/v10"

	"updatesfeed/internal/config"
	"updatesfeed/internal/database"
	"updatesfeed/internal/form"
	"updatesfeed/internal/service"
	"updatesfeed/internal/session"
	"updatesfeed/internal/store"
)

type Handlers struct {
	Feed     service.FeedService
	Auth     service.AuthService
	Form     *form.Controller
	Store    store.Store
	Gate     session.Gate
	DB       *database.DB // nil in static-backend mode
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewHandlers(svc *service.Service, st store.Store, gate session.Gate, db *database.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		Feed:     svc.Feed,
		Auth:     svc.Auth,
		Form:     svc.Form,
		Store:    st,
		Gate:     gate,
		DB:       db,
		Cfg:      cfg,
		Validate: validator.New(),
	}
}
