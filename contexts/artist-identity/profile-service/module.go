package profileservice

import (
	"log/slog"

	httpadapter "soundmint/contexts/artist-identity/profile-service/adapters/http"
	"soundmint/contexts/artist-identity/profile-service/adapters/memory"
	"soundmint/contexts/artist-identity/profile-service/application"
	"soundmint/contexts/artist-identity/profile-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Treasury   ports.TreasuryReader
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Treasury: deps.Treasury,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(treasury ports.TreasuryReader, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Treasury:   treasury,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
