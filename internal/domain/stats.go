package domain

// PlayerStats is a player's derived box-score line for one game. Every
// field is recomputed from the event log on demand; nothing here is ever
// persisted or mutated independently. Points always equals the sum of the
// point contributions of the scoring events in the player's history.
type PlayerStats struct {
	PassAttempts           int `json:"passAttempts"`
	PassCompletions        int `json:"passCompletions"`
	PassTDs                int `json:"passTDs"`
	InterceptionsThrown    int `json:"interceptionsThrown"`
	RushAttempts           int `json:"rushAttempts"`
	RushTDs                int `json:"rushTDs"`
	Receptions             int `json:"receptions"`
	ReceivingTDs           int `json:"receivingTDs"`
	DefensiveInterceptions int `json:"defensiveInterceptions"`
	Sacks                  int `json:"sacks"`
	FlagPulls              int `json:"flagPulls"`
	DefensiveTDs           int `json:"defensiveTDs"`
	Conversions1pt         int `json:"conversions1pt"`
	Conversions2pt         int `json:"conversions2pt"`
	DefensivePATReturns    int `json:"defensivePatReturns"`
	Points                 int `json:"points"`
}

// BoxScoreLine pairs a player with their derived stats for display.
// Players absent from the roster (dangling event references) carry only
// the id.
type BoxScoreLine struct {
	PlayerID string      `json:"playerId"`
	Name     string      `json:"name,omitempty"`
	Jersey   string      `json:"jersey,omitempty"`
	Stats    PlayerStats `json:"stats"`
}

// BoxScore is the aggregated per-player statistics table for one game.
type BoxScore struct {
	GameID   string         `json:"gameId"`
	Opponent string         `json:"opponent"`
	Date     string         `json:"date"`
	RuleSet  RuleSet        `json:"ruleSet"`
	Lines    []BoxScoreLine `json:"lines"`
}
