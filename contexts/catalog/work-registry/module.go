package workregistry

import (
	"log/slog"

	httpadapter "soundmint/contexts/catalog/work-registry/adapters/http"
	"soundmint/contexts/catalog/work-registry/adapters/memory"
	"soundmint/contexts/catalog/work-registry/application"
	"soundmint/contexts/catalog/work-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Profiles    ports.Profiles
	Treasury    ports.Treasury
	Ledger      ports.Ledger
	AssetIssuer ports.AssetIssuer
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Profiles:    deps.Profiles,
		Treasury:    deps.Treasury,
		Ledger:      deps.Ledger,
		AssetIssuer: deps.AssetIssuer,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(
	profiles ports.Profiles,
	treasury ports.Treasury,
	ledger ports.Ledger,
	assetIssuer ports.AssetIssuer,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Profiles:    profiles,
		Treasury:    treasury,
		Ledger:      ledger,
		AssetIssuer: assetIssuer,
		Outbox:      store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
