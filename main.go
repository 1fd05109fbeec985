package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"conquest/experiments"
	"conquest/experiments/metrics"
	"conquest/logger"
	"conquest/meta"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("conquest", flag.ContinueOnError)
	preset := fs.String("experiment", "", "Preset experiment: baseline, cutoff or parallelization (default: the -agents matchup)")
	games := fs.Int("games", 10, "Number of games per matchup")
	seed := fs.String("seed", "conquest", "Seed prefix of every game")
	ruleset := fs.String("ruleset", "classic", "Built-in ruleset name or path to a YAML ruleset")
	mapName := fs.String("map", "swiss", "Built-in map name or path to a YAML map")
	agents := fs.String("agents", "mcts,greedy", "Comma separated agent kinds, one per seat: random, greedy or mcts")
	out := fs.String("out", "", "Directory for CSV records (nothing is written when empty)")
	maxMoves := fs.Int("max-moves", meta.MAX_MOVES, "Maximum number of moves per game")
	goroutines := fs.Int("goroutines", meta.GO_ROUTINES, "Number of goroutines for parallel playouts")
	episodes := fs.Int("episodes", meta.EPISODES, "Number of playouts per move")
	duration := fs.Duration("duration", 0, "Duration of playouts per move, instead of -episodes")
	cutoff := fs.Int("cutoff", meta.WITH_CUTOFF, "Rollout depth before evaluating")
	evaluate := fs.String("evaluate", "resources", "Evaluation of cut off rollouts: resources or border")
	list := fs.Bool("list", false, "List built-in rulesets and maps")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		fmt.Printf("rulesets: %s\n", strings.Join(meta.RulesetNames(), ", "))
		fmt.Printf("maps: %s\n", strings.Join(meta.MapNames(), ", "))
		return nil
	}

	rs, err := meta.LoadRuleset(*ruleset)
	if err != nil {
		return err
	}
	m, err := meta.LoadMap(*mapName)
	if err != nil {
		return err
	}

	var exp experiments.Experiment
	switch *preset {
	case "":
		configs, err := parseAgents(*agents, metrics.AgentConfig{
			Goroutines: *goroutines,
			Episodes:   *episodes,
			Duration:   *duration,
			Cutoff:     *cutoff,
			Evaluate:   *evaluate,
		})
		if err != nil {
			return err
		}
		exp = experiments.Experiment{Name: "matchup", Configs: configs, MatchUps: [][]metrics.AgentConfig{configs}}
	case "baseline":
		exp = experiments.BaselineExperiment()
	case "cutoff":
		exp = experiments.CutoffExperiment()
	case "parallelization":
		exp = experiments.ParallelizationExperiment()
	default:
		return fmt.Errorf("unknown experiment %q", *preset)
	}
	exp.Ruleset = rs
	exp.Map = m
	exp.Games = *games
	exp.Seed = *seed
	exp.MaxMoves = *maxMoves
	exp.OutDir = *out

	start := time.Now()
	result, err := experiments.Run(exp)
	if err != nil {
		return err
	}

	wins := map[string]int{}
	for _, g := range result.Games {
		for _, w := range g.Winners {
			wins[string(w)]++
		}
	}
	log.Info().
		Str("experiment", exp.Name).
		Str("ruleset", rs.Name).
		Str("map", m.ID).
		Int("games", len(result.Games)).
		Interface("winsBySeat", wins).
		Dur("elapsed", time.Since(start)).
		Msg("simulation finished")
	return nil
}

// parseAgents builds one config per listed kind, numbered from 1.
func parseAgents(list string, search metrics.AgentConfig) ([]metrics.AgentConfig, error) {
	var configs []metrics.AgentConfig
	for i, kind := range strings.Split(list, ",") {
		kind = strings.TrimSpace(kind)
		config := metrics.AgentConfig{ID: i + 1, Kind: kind, Evaluate: search.Evaluate}
		switch kind {
		case "random":
		case "greedy":
		case "mcts":
			config.Goroutines = search.Goroutines
			config.Cutoff = search.Cutoff
			if search.Duration > 0 {
				config.Duration = search.Duration
			} else {
				config.Episodes = search.Episodes
			}
		default:
			return nil, fmt.Errorf("unknown agent kind %q", kind)
		}
		configs = append(configs, config)
	}
	if len(configs) < 2 {
		return nil, fmt.Errorf("need at least two agents, got %q", list)
	}
	return configs, nil
}
