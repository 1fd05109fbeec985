package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"conquest/game"
)

// AgentConfig describes an agent taking part in an experiment.
type AgentConfig struct {
	ID         int
	Kind       string // random, greedy or mcts
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
	Evaluate   string // resources or border
}

type GameRecord struct {
	ID     int
	Agents []int // AgentConfig.ID per seat, in turn order
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the files of one run.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "goroutines", "duration", "episodes", "cutoff", "evaluate"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			config.Evaluate,
		})
	}
	return w.write("agent_configs.csv", "agent configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agents", "starting_player", "winners", "seed", "rounds", "total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		agents := make([]string, len(record.Agents))
		for i, id := range record.Agents {
			agents[i] = strconv.Itoa(id)
		}
		winners := make([]string, len(record.Winners))
		for i, id := range record.Winners {
			winners[i] = string(id)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strings.Join(agents, ";"),
			string(record.StartingPlayer),
			strings.Join(winners, ";"),
			record.Seed,
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "duration", "episodes", "full_playouts", "is_tree_reset"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			string(record.Player),
			record.Action,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.FormatBool(record.IsTreeReset),
		})
	}
	return w.write("move_records.csv", "move records", header, rows)
}

// WriteWinRates writes how often each agent config won, from game records.
func (w *Writer) WriteWinRates(records []GameRecord) error {
	type tally struct{ games, wins int }
	tallies := map[int]*tally{}
	order := []int{}
	for _, record := range records {
		for seat, id := range record.Agents {
			if tallies[id] == nil {
				tallies[id] = &tally{}
				order = append(order, id)
			}
			tallies[id].games++
			for _, winner := range record.Winners {
				if winner == SeatPlayer(seat) {
					tallies[id].wins++
					break
				}
			}
		}
	}

	header := []string{"agent", "games", "wins", "win_rate"}
	rows := make([][]string, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		rows = append(rows, []string{
			strconv.Itoa(id),
			strconv.Itoa(t.games),
			strconv.Itoa(t.wins),
			strconv.FormatFloat(float64(t.wins)/float64(t.games), 'f', 3, 64),
		})
	}
	return w.write("win_rates.csv", "win rates", header, rows)
}

// SeatPlayer names the player sitting at seat i of a simulated game.
func SeatPlayer(seat int) game.PlayerID {
	return game.PlayerID(fmt.Sprintf("p%d", seat+1))
}

func (w *Writer) write(file, what string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}

	// Write each row
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
