// Package rosterservice implements the administrative side of matchday
// voting: fixtures with their auto-created vote sessions, the player roster,
// and the allowed-voter list.
package rosterservice

import (
	"log/slog"

	httpadapter "postmatch/contexts/matchday/roster-service/adapters/http"
	"postmatch/contexts/matchday/roster-service/adapters/memory"
	"postmatch/contexts/matchday/roster-service/application"
	"postmatch/contexts/matchday/roster-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
