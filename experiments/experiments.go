package experiments

import (
	"fmt"
	"hash/fnv"
	"time"

	"conquest/agent"
	"conquest/engine"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/gamemaster"
	"conquest/meta"
	"conquest/searcher"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Experiment is a batch of simulated games between agent configs.
type Experiment struct {
	Name    string
	Ruleset game.Ruleset
	Map     *game.GraphMap
	Configs []metrics.AgentConfig
	// MatchUps lists the seats of each pairing. Seats rotate every game so
	// each config gets to start.
	MatchUps [][]metrics.AgentConfig
	Games    int // Per match up
	Seed     string
	MaxMoves int
	// OutDir receives the CSV files; nothing is written when empty.
	OutDir string
}

type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Dir   string
}

// CutoffExperiment pairs a full playout search against searches with rollout
// cutoffs.
func CutoffExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Goroutines: 8, Duration: TimeBudget} // Without cutoff (full playout)
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: "mcts", Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 10},
		{ID: 2, Kind: "mcts", Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 75},
		{ID: 3, Kind: "mcts", Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 150},
	}

	// Each matchup pairs the baseline agent against a cutoff agent
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return Experiment{Name: "cutoff", Configs: append(cutoffConfigs, baseline), MatchUps: matchUps, Games: NumGames}
}

// ParallelizationExperiment pairs searches with more goroutines against the
// sequential baseline under the same time budget.
func ParallelizationExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Goroutines: 1, Duration: TimeBudget, Cutoff: meta.WITH_CUTOFF}
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range []int{2, 4, 8, 16} {
		config := baseline
		config.ID = i + 1
		config.Goroutines = goroutines
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return Experiment{Name: "parallelization", Configs: append(configs, baseline), MatchUps: matchUps, Games: NumGames}
}

// BaselineExperiment pits the search against the greedy and random agents.
func BaselineExperiment() Experiment {
	random := metrics.AgentConfig{ID: 1, Kind: "random"}
	greedy := metrics.AgentConfig{ID: 2, Kind: "greedy", Evaluate: "border"}
	mcts := metrics.AgentConfig{ID: 3, Kind: "mcts", Goroutines: meta.GO_ROUTINES, Episodes: meta.EPISODES, Cutoff: meta.WITH_CUTOFF}
	return Experiment{
		Name:     "baseline",
		Configs:  []metrics.AgentConfig{random, greedy, mcts},
		MatchUps: [][]metrics.AgentConfig{{random, greedy}, {greedy, mcts}, {random, mcts}},
		Games:    NumGames,
	}
}

// Run plays every game of the experiment and stores the records.
func Run(exp Experiment) (Result, error) {
	if exp.Map == nil {
		return Result{}, fmt.Errorf("experiment %s: a map is required", exp.Name)
	}
	games := exp.Games
	if games <= 0 {
		games = NumGames
	}

	// Run a number of games for each matchup
	count := 0
	result := Result{Games: []metrics.GameRecord{}, Moves: []metrics.MoveRecord{}}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d with %d seats...", mi+1, len(exp.MatchUps), len(matchup))

		for i := 0; i < games; i++ {
			seats := rotate(matchup, i)
			seed := fmt.Sprintf("%s-%d-%d", exp.Seed, mi, i)

			winners, gameMetric, moveMetrics, err := runGame(exp, seats, seed, count+1)
			if err != nil {
				return result, err
			}
			count++

			ids := make([]int, len(seats))
			for s, config := range seats {
				ids[s] = config.ID
			}
			result.Games = append(result.Games, metrics.GameRecord{ID: count, Agents: ids, GameMetric: gameMetric})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winners: %v", mi+1, len(exp.MatchUps), i+1, winners)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if exp.OutDir == "" {
		return result, nil
	}
	dir, err := store(exp, result)
	result.Dir = dir
	return result, err
}

func store(exp Experiment, result Result) (string, error) {
	writer, err := metrics.NewWriter(exp.OutDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteWinRates(result.Games); err != nil {
		return "", fmt.Errorf("failed to write win rates: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}

// runGame plays a single game between the seated agents.
func runGame(exp Experiment, seats []metrics.AgentConfig, seed string, id int) ([]game.PlayerID, metrics.GameMetric, []metrics.MoveMetric, error) {
	players := make([]game.PlayerSetup, len(seats))
	for i := range seats {
		players[i] = game.PlayerSetup{ID: metrics.SeatPlayer(i)}
		if exp.Ruleset.Teams.Enabled {
			players[i].TeamID = fmt.Sprintf("team-%d", i%2+1)
		}
	}
	gs, err := game.NewGame(game.Setup{
		Players:            players,
		Map:                exp.Map,
		Ruleset:            exp.Ruleset,
		Seed:               seed,
		ArmiesPerTerritory: meta.ARMIES_PER_TERRITORY,
	})
	if err != nil {
		return nil, metrics.GameMetric{}, nil, fmt.Errorf("game %d: %w", id, err)
	}
	rules := game.NewRules(game.WithMap(exp.Map), game.WithRuleset(exp.Ruleset))

	agents := make(map[game.PlayerID]agent.Agent, len(seats))
	for i, config := range seats {
		a, err := NewAgent(config, rules, seedOf(seed, i))
		if err != nil {
			return nil, metrics.GameMetric{}, nil, err
		}
		agents[players[i].ID] = a
	}

	host := gamemaster.NewHost(fmt.Sprintf("%s-%d", exp.Name, id), gs, rules)
	e, err := engine.LocalEngine(host, agents, engine.WithMaxMoves(exp.MaxMoves))
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	winners, gameMetric, moveMetrics := e.Run()
	return winners, gameMetric, moveMetrics, nil
}

// NewAgent builds the agent a config describes.
func NewAgent(config metrics.AgentConfig, rules game.Rules, seed uint64) (agent.Agent, error) {
	evaluate, err := EvaluationFn(config.Evaluate)
	if err != nil {
		return nil, err
	}
	switch config.Kind {
	case "random":
		return agent.NewRandom(rules, seed), nil
	case "greedy":
		return agent.NewGreedy(rules, evaluate, seed), nil
	case "mcts", "":
		return agent.NewSearch(rules, createMCTS(config, evaluate)), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}
}

// EvaluationFn maps a config name to a position evaluation.
func EvaluationFn(name string) (game.Evaluate, error) {
	switch name {
	case "", "resources":
		return game.EvaluateResources, nil
	case "border":
		return game.EvaluateBorderStrength, nil
	default:
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
}

func createMCTS(config metrics.AgentConfig, evaluate game.Evaluate) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Episodes <= 0 && config.Duration <= 0 {
		options = append(options, searcher.WithEpisodes(meta.EPISODES))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	options = append(options, searcher.WithEvaluationFn(evaluate), searcher.WithMetrics())

	goroutines := config.Goroutines
	if goroutines <= 0 {
		goroutines = meta.GO_ROUTINES
	}
	return searcher.NewMCTS(goroutines, options...)
}

func rotate(seats []metrics.AgentConfig, by int) []metrics.AgentConfig {
	n := len(seats)
	out := make([]metrics.AgentConfig, n)
	for i := range seats {
		out[i] = seats[(i+by)%n]
	}
	return out
}

func seedOf(seed string, seat int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%d", seed, seat)
	return h.Sum64()
}
