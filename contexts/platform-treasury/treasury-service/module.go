package treasuryservice

import (
	"log/slog"

	httpadapter "soundmint/contexts/platform-treasury/treasury-service/adapters/http"
	"soundmint/contexts/platform-treasury/treasury-service/adapters/memory"
	"soundmint/contexts/platform-treasury/treasury-service/application"
	"soundmint/contexts/platform-treasury/treasury-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository   ports.Repository
	Clock        ports.Clock
	Ledger       ports.Ledger
	FloatAccount string
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:         deps.Repository,
		Clock:        deps.Clock,
		Ledger:       deps.Ledger,
		FloatAccount: deps.FloatAccount,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(ledger ports.Ledger, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:   store,
		Clock:        store,
		Ledger:       ledger,
		FloatAccount: "soundmint_platform_float",
		Logger:       logger,
	})
	module.Store = store
	return module
}
