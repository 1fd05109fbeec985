package game

// DefenderDiceStrategy selects how many dice a defender rolls.
type DefenderDiceStrategy string

const (
	DefendAlwaysMax DefenderDiceStrategy = "alwaysMax"
)

// FortifyMode selects the topology rule for moving armies.
type FortifyMode string

const (
	FortifyAdjacent  FortifyMode = "adjacent"
	FortifyConnected FortifyMode = "connected"
)

// TradeValueOverflow selects how trade values continue past the schedule.
type TradeValueOverflow string

const (
	OverflowRepeatLast     TradeValueOverflow = "repeatLast"
	OverflowContinueByFive TradeValueOverflow = "continueByFive"
)

// WinCondition decides when the game is over.
type WinCondition string

const (
	WinLastPlayerStanding WinCondition = "lastPlayerStanding"
	WinLastTeamStanding   WinCondition = "lastTeamStanding"
)

type CombatConfig struct {
	MaxAttackDice           int                  `json:"maxAttackDice" yaml:"maxAttackDice"`
	MaxDefendDice           int                  `json:"maxDefendDice" yaml:"maxDefendDice"`
	DefenderDiceStrategy    DefenderDiceStrategy `json:"defenderDiceStrategy" yaml:"defenderDiceStrategy"`
	AllowAttackerDiceChoice bool                 `json:"allowAttackerDiceChoice" yaml:"allowAttackerDiceChoice"`
}

type FortifyConfig struct {
	FortifyMode FortifyMode `json:"fortifyMode" yaml:"fortifyMode"`
	// MaxFortifiesPerTurn caps Fortify actions per turn; 0 means no cap.
	MaxFortifiesPerTurn int `json:"maxFortifiesPerTurn" yaml:"maxFortifiesPerTurn"`
}

type TradeSets struct {
	ThreeOfAKind bool `json:"threeOfAKind" yaml:"threeOfAKind"`
	OneOfEach    bool `json:"oneOfEach" yaml:"oneOfEach"`
	AllowWild    bool `json:"allowWild" yaml:"allowWild"`
}

type TerritoryBonus struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	BonusArmies int  `json:"bonusArmies" yaml:"bonusArmies"`
}

type CardsConfig struct {
	TradeSets           TradeSets          `json:"tradeSets" yaml:"tradeSets"`
	ForcedTradeHandSize int                `json:"forcedTradeHandSize" yaml:"forcedTradeHandSize"`
	TradeValues         []int              `json:"tradeValues" yaml:"tradeValues"`
	TradeValueOverflow  TradeValueOverflow `json:"tradeValueOverflow" yaml:"tradeValueOverflow"`
	TerritoryBonus      TerritoryBonus     `json:"territoryBonus" yaml:"territoryBonus"`
	AwardCardOnCapture  bool               `json:"awardCardOnCapture" yaml:"awardCardOnCapture"`
	WildCards           int                `json:"wildCards" yaml:"wildCards"`
}

type TeamsConfig struct {
	Enabled                   bool         `json:"enabled" yaml:"enabled"`
	PreventAttackingTeammates bool         `json:"preventAttackingTeammates" yaml:"preventAttackingTeammates"`
	AllowPlaceOnTeammates     bool         `json:"allowPlaceOnTeammates" yaml:"allowPlaceOnTeammates"`
	AllowFortifyToTeammates   bool         `json:"allowFortifyToTeammates" yaml:"allowFortifyToTeammates"`
	AllowFortifyThroughTeams  bool         `json:"allowFortifyThroughTeammates" yaml:"allowFortifyThroughTeammates"`
	WinCondition              WinCondition `json:"winCondition" yaml:"winCondition"`
}

// Ruleset is a named, versioned bundle of configuration groups.
type Ruleset struct {
	Name    string        `json:"name" yaml:"name"`
	Version string        `json:"version" yaml:"version"`
	Combat  CombatConfig  `json:"combat" yaml:"combat"`
	Fortify FortifyConfig `json:"fortify" yaml:"fortify"`
	Cards   CardsConfig   `json:"cards" yaml:"cards"`
	Teams   TeamsConfig   `json:"teams" yaml:"teams"`
}

func DefaultCombatConfig() CombatConfig {
	return CombatConfig{
		MaxAttackDice:           3,
		MaxDefendDice:           2,
		DefenderDiceStrategy:    DefendAlwaysMax,
		AllowAttackerDiceChoice: true,
	}
}

func DefaultFortifyConfig() FortifyConfig {
	return FortifyConfig{
		FortifyMode:         FortifyConnected,
		MaxFortifiesPerTurn: 1,
	}
}

func DefaultCardsConfig() CardsConfig {
	return CardsConfig{
		TradeSets:           TradeSets{ThreeOfAKind: true, OneOfEach: true, AllowWild: true},
		ForcedTradeHandSize: 5,
		TradeValues:         []int{4, 6, 8, 10, 12, 15},
		TradeValueOverflow:  OverflowContinueByFive,
		TerritoryBonus:      TerritoryBonus{Enabled: true, BonusArmies: 2},
		AwardCardOnCapture:  true,
		WildCards:           2,
	}
}

func DefaultTeamsConfig() TeamsConfig {
	return TeamsConfig{WinCondition: WinLastPlayerStanding}
}

// ClassicRuleset mirrors the standard board game rules.
func ClassicRuleset() Ruleset {
	return Ruleset{
		Name:    "classic",
		Version: "1",
		Combat:  DefaultCombatConfig(),
		Fortify: DefaultFortifyConfig(),
		Cards:   DefaultCardsConfig(),
		Teams:   DefaultTeamsConfig(),
	}
}

// ReinforcementFunc computes the reinforcement grant of a player at the start
// of their turn. The result must be positive.
type ReinforcementFunc func(state *GameState, player PlayerID, m *GraphMap) int

// Rules carries the per-call dependencies of the reducer and enumerator.
// Nil sub-configs are optional; see resolve.
type Rules struct {
	Map            *GraphMap
	Combat         *CombatConfig
	Fortify        *FortifyConfig
	Cards          *CardsConfig
	Teams          *TeamsConfig
	Reinforcements ReinforcementFunc
}

type Option func(r *Rules)

func WithMap(m *GraphMap) Option {
	return func(r *Rules) {
		r.Map = m
	}
}

func WithCombat(c CombatConfig) Option {
	return func(r *Rules) {
		r.Combat = &c
	}
}

func WithFortify(f FortifyConfig) Option {
	return func(r *Rules) {
		r.Fortify = &f
	}
}

func WithCards(c CardsConfig) Option {
	return func(r *Rules) {
		r.Cards = &c
	}
}

func WithTeams(t TeamsConfig) Option {
	return func(r *Rules) {
		r.Teams = &t
	}
}

func WithReinforcements(fn ReinforcementFunc) Option {
	return func(r *Rules) {
		if fn != nil {
			r.Reinforcements = fn
		}
	}
}

// WithRuleset sets every configuration group from a ruleset.
func WithRuleset(rs Ruleset) Option {
	return func(r *Rules) {
		WithCombat(rs.Combat)(r)
		WithFortify(rs.Fortify)(r)
		WithCards(rs.Cards)(r)
		WithTeams(rs.Teams)(r)
	}
}

// NewRules assembles Rules from options.
func NewRules(options ...Option) Rules {
	var r Rules
	for _, option := range options {
		option(&r)
	}
	return r
}

// Options converts Rules back into options for ApplyAction.
func (r Rules) Options() []Option {
	return []Option{func(dst *Rules) { *dst = r }}
}

// resolved holds the call-boundary view of Rules: optional groups are
// replaced by their defaults, required ones stay nil so callers can report them.
type resolved struct {
	m              *GraphMap
	combat         *CombatConfig
	fortify        FortifyConfig
	cards          *CardsConfig
	teams          TeamsConfig
	reinforcements ReinforcementFunc
}

func (r Rules) resolve() resolved {
	out := resolved{
		m:              r.Map,
		combat:         r.Combat,
		fortify:        DefaultFortifyConfig(),
		cards:          r.Cards,
		teams:          TeamsConfig{WinCondition: WinLastPlayerStanding},
		reinforcements: r.Reinforcements,
	}
	if r.Fortify != nil {
		out.fortify = *r.Fortify
		if out.fortify.FortifyMode == "" {
			out.fortify.FortifyMode = FortifyConnected
		}
	}
	if r.Teams != nil {
		out.teams = *r.Teams
		if out.teams.WinCondition == "" {
			out.teams.WinCondition = WinLastPlayerStanding
		}
	}
	if out.reinforcements == nil {
		out.reinforcements = StandardReinforcements
	}
	return out
}
