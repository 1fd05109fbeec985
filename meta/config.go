package meta

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"conquest/game"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/rulesets/*.yaml builtin/maps/*.yaml
var builtin embed.FS

type rulesetFile struct {
	// Extends names a built-in ruleset whose values are the defaults.
	Extends      string `yaml:"extends,omitempty"`
	game.Ruleset `yaml:",inline"`
}

type mapFile struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Territories []game.Territory `yaml:"territories"`
	Continents  []game.Continent `yaml:"continents"`
}

// ParseRuleset decodes a YAML ruleset. Fields left out keep the values of the
// extended ruleset, classic by default.
func ParseRuleset(data []byte) (game.Ruleset, error) {
	var header struct {
		Name    string `yaml:"name"`
		Extends string `yaml:"extends"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return game.Ruleset{}, fmt.Errorf("failed to parse ruleset: %w", err)
	}

	base := game.ClassicRuleset()
	if header.Extends != "" {
		if header.Extends == header.Name {
			return game.Ruleset{}, fmt.Errorf("ruleset %s extends itself", header.Name)
		}
		var err error
		if base, err = BuiltinRuleset(header.Extends); err != nil {
			return game.Ruleset{}, err
		}
	}
	base.Name, base.Version = "", ""

	file := rulesetFile{Ruleset: base}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return game.Ruleset{}, fmt.Errorf("failed to parse ruleset: %w", err)
	}
	if err := validateRuleset(file.Ruleset); err != nil {
		return game.Ruleset{}, fmt.Errorf("invalid ruleset %q: %w", file.Name, err)
	}
	return file.Ruleset, nil
}

func validateRuleset(rs game.Ruleset) error {
	var errs []error
	if rs.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if rs.Version == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if rs.Combat.MaxAttackDice < 1 || rs.Combat.MaxDefendDice < 1 {
		errs = append(errs, errors.New("combat needs at least one attack and one defend die"))
	}
	if rs.Combat.DefenderDiceStrategy != game.DefendAlwaysMax {
		errs = append(errs, fmt.Errorf("unknown defender dice strategy %q", rs.Combat.DefenderDiceStrategy))
	}
	if !slices.Contains([]game.FortifyMode{game.FortifyAdjacent, game.FortifyConnected}, rs.Fortify.FortifyMode) {
		errs = append(errs, fmt.Errorf("unknown fortify mode %q", rs.Fortify.FortifyMode))
	}
	if rs.Fortify.MaxFortifiesPerTurn < 0 {
		errs = append(errs, errors.New("maxFortifiesPerTurn cannot be negative"))
	}
	if len(rs.Cards.TradeValues) == 0 {
		errs = append(errs, errors.New("tradeValues cannot be empty"))
	}
	if !slices.Contains([]game.TradeValueOverflow{game.OverflowRepeatLast, game.OverflowContinueByFive}, rs.Cards.TradeValueOverflow) {
		errs = append(errs, fmt.Errorf("unknown trade value overflow %q", rs.Cards.TradeValueOverflow))
	}
	if rs.Cards.ForcedTradeHandSize != 0 && rs.Cards.ForcedTradeHandSize < 3 {
		errs = append(errs, errors.New("forcedTradeHandSize must be 0 or at least 3"))
	}
	if rs.Cards.WildCards < 0 {
		errs = append(errs, errors.New("wildCards cannot be negative"))
	}
	if !slices.Contains([]game.WinCondition{game.WinLastPlayerStanding, game.WinLastTeamStanding}, rs.Teams.WinCondition) {
		errs = append(errs, fmt.Errorf("unknown win condition %q", rs.Teams.WinCondition))
	}
	return errors.Join(errs...)
}

// ParseMap decodes a YAML map definition.
func ParseMap(data []byte) (*game.GraphMap, error) {
	var file mapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	if file.ID == "" {
		return nil, errors.New("map id is required")
	}
	m, err := game.NewGraphMap(file.ID, file.Name, file.Territories, file.Continents)
	if err != nil {
		return nil, fmt.Errorf("invalid map %q: %w", file.ID, err)
	}
	return m, nil
}

// BuiltinRuleset returns a ruleset shipped with the module.
func BuiltinRuleset(name string) (game.Ruleset, error) {
	data, err := builtin.ReadFile(path.Join("builtin", "rulesets", name+".yaml"))
	if err != nil {
		return game.Ruleset{}, fmt.Errorf("unknown ruleset %q", name)
	}
	return ParseRuleset(data)
}

// BuiltinMap returns a map shipped with the module.
func BuiltinMap(name string) (*game.GraphMap, error) {
	if name == "swiss" {
		return game.SwissMap(), nil
	}
	data, err := builtin.ReadFile(path.Join("builtin", "maps", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown map %q", name)
	}
	return ParseMap(data)
}

// RulesetNames lists the built-in rulesets.
func RulesetNames() []string {
	return names("builtin/rulesets")
}

// MapNames lists the built-in maps.
func MapNames() []string {
	return append(names("builtin/maps"), "swiss")
}

func names(dir string) []string {
	entries, err := builtin.ReadDir(dir)
	if err != nil {
		panic(err)
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return out
}

// LoadRuleset reads a ruleset from a YAML file, or returns the built-in
// ruleset of that name when the argument is not a .yaml/.yml path.
func LoadRuleset(nameOrPath string) (game.Ruleset, error) {
	if !isFile(nameOrPath) {
		return BuiltinRuleset(nameOrPath)
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return game.Ruleset{}, fmt.Errorf("failed to read ruleset: %w", err)
	}
	return ParseRuleset(data)
}

// LoadMap is LoadRuleset for maps.
func LoadMap(nameOrPath string) (*game.GraphMap, error) {
	if !isFile(nameOrPath) {
		return BuiltinMap(nameOrPath)
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	return ParseMap(data)
}

func isFile(nameOrPath string) bool {
	ext := filepath.Ext(nameOrPath)
	return ext == ".yaml" || ext == ".yml"
}
