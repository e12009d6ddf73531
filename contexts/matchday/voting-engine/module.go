package votingengine

import (
	"log/slog"

	httpadapter "postmatch/contexts/matchday/voting-engine/adapters/http"
	"postmatch/contexts/matchday/voting-engine/adapters/memory"
	"postmatch/contexts/matchday/voting-engine/application/commands"
	"postmatch/contexts/matchday/voting-engine/application/queries"
	"postmatch/contexts/matchday/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Votes    ports.VoteRepository
	Sessions ports.SessionRepository
	Matches  ports.MatchRepository
	Players  ports.PlayerRepository
	Voters   ports.VoterRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	ballotUseCase := commands.BallotUseCase{
		Votes:    deps.Votes,
		Sessions: deps.Sessions,
		Matches:  deps.Matches,
		Players:  deps.Players,
		Voters:   deps.Voters,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	rankingUseCase := queries.RankingUseCase{
		Votes:    deps.Votes,
		Sessions: deps.Sessions,
		Matches:  deps.Matches,
		Players:  deps.Players,
		Voters:   deps.Voters,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ballots:  ballotUseCase,
			Rankings: rankingUseCase,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:    store,
		Sessions: store,
		Matches:  store,
		Players:  store,
		Voters:   store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
