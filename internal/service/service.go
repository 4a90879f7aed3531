package service

import (
	"updatesfeed/internal/config"
	"updatesfeed/internal/form"
	"updatesfeed/internal/repository"
	"updatesfeed/internal/store"
)

type Service struct {
	Feed FeedService
	Form *form.Controller
	Auth AuthService // nil in static-backend mode
}

func NewService(repo *repository.Repository, st store.Store, cfg *config.Config) *Service {
	s := &Service{
		Feed: NewFeedService(st, cfg.OwnerName, cfg.RequestTimeout),
		Form: form.NewController(cfg.OwnerName),
	}

	if repo != nil {
		s.Auth = NewAuthService(repo.Owner, cfg)
	}

	return s
}
