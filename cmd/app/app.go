package app

import (
	"context"
	"log"

	"updatesfeed/internal/config"
	"updatesfeed/internal/database"
	"updatesfeed/internal/repository"
	"updatesfeed/internal/service"
	"updatesfeed/internal/session"
	"updatesfeed/internal/store"
)

// App wires one of the two backend strategies. The static snapshot backend
// needs no database; the live backend connects to Postgres, bootstraps the
// owner account and runs the session gate off the auth event stream.
func App(cfg *config.Config) (*database.DB, store.Store, *service.Service, session.Gate) {
	if cfg.Backend == "live" {
		return liveApp(cfg)
	}
	return staticApp(cfg)
}

func staticApp(cfg *config.Config) (*database.DB, store.Store, *service.Service, session.Gate) {
	var publisher store.Publisher
	if cfg.Publish.Enabled {
		p, err := store.NewSnapshotPublisher(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize snapshot publisher: %v", err)
		}
		publisher = p
	}

	st := store.NewSnapshotStore(cfg, publisher)
	services := service.NewService(nil, st, cfg)
	gate := session.NewLocalGate(cfg.AdminToken)

	return nil, st, services, gate
}

func liveApp(cfg *config.Config) (*database.DB, store.Store, *service.Service, session.Gate) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewRepository(db.DB)

	if err := repo.Owner.EnsureOwner(context.Background(), cfg.OwnerEmail, cfg.OwnerPassword, cfg.OwnerName); err != nil {
		log.Printf("Warning: owner bootstrap skipped: %v", err)
	}

	st := store.NewLiveStore(db.DB)
	services := service.NewService(repo, st, cfg)

	gate := session.NewLiveGate(services.Auth.ValidateSession, func() {
		services.Feed.Reload(context.Background())
	})
	gate.Listen(services.Auth.Events())

	return db, st, services, gate
}
