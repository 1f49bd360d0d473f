package royaltyledger

import (
	"log/slog"

	httpadapter "soundmint/contexts/finance-core/royalty-ledger/adapters/http"
	"soundmint/contexts/finance-core/royalty-ledger/adapters/memory"
	"soundmint/contexts/finance-core/royalty-ledger/application"
	"soundmint/contexts/finance-core/royalty-ledger/ports"
)

const defaultEscrowAccount = "soundmint_royalty_escrow"

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository    ports.Repository
	Works         ports.Works
	Treasury      ports.Treasury
	Ledger        ports.Ledger
	Outbox        ports.OutboxWriter
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	EscrowAccount string
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	escrow := deps.EscrowAccount
	if escrow == "" {
		escrow = defaultEscrowAccount
	}
	service := application.Service{
		Repo:          deps.Repository,
		Works:         deps.Works,
		Treasury:      deps.Treasury,
		Ledger:        deps.Ledger,
		Outbox:        deps.Outbox,
		Clock:         deps.Clock,
		IDGen:         deps.IDGenerator,
		EscrowAccount: escrow,
		Logger:        deps.Logger,
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
	works ports.Works,
	treasury ports.Treasury,
	ledger ports.Ledger,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Works:       works,
		Treasury:    treasury,
		Ledger:      ledger,
		Outbox:      store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
