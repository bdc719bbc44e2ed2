package domain

// RuleSet identifies a closed rule-set variant bound to a game at creation.
type RuleSet string

const (
	// RuleSet5v5 is the five-a-side variant. Conversions are worth 1 or 2
	// points and a defensive return of a failed conversion scores 2.
	RuleSet5v5 RuleSet = "5V5"
	// RuleSet7v7 is the seven-a-side variant.
	RuleSet7v7 RuleSet = "7V7"
	// RuleSet8v8 is the eight-a-side variant.
	RuleSet8v8 RuleSet = "8V8"
)

// Game is a single tracked game against one opponent. It exclusively owns
// its ordered event log. The rule set never changes after creation.
type Game struct {
	ID       string      `json:"id"`
	Opponent string      `json:"opponent"`
	Date     string      `json:"date"`
	RuleSet  RuleSet     `json:"ruleSet"`
	Notes    string      `json:"notes,omitempty"`
	Events   []StatEvent `json:"events"`
}
