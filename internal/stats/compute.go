// Package stats derives per-player box scores from a game's event log.
// Compute is a pure fold over the log: no caching, no mutation of inputs,
// and no error paths. Anomalous inputs (dangling player references,
// unrecognized event tags) degrade to safe defaults.
package stats

import (
	"sort"

	"flagstat-service/internal/domain"
)

// delta is the fixed effect one event type has on the credited players.
// The receiver effect applies only when the event names a receiver.
type delta struct {
	primary  func(*domain.PlayerStats)
	receiver func(*domain.PlayerStats)
}

var deltas = map[domain.EventType]delta{
	domain.EventPassAttempt: {
		primary: func(s *domain.PlayerStats) { s.PassAttempts++ },
	},
	domain.EventPassCompletion: {
		primary: func(s *domain.PlayerStats) {
			s.PassAttempts++
			s.PassCompletions++
		},
		receiver: func(s *domain.PlayerStats) { s.Receptions++ },
	},
	domain.EventPassTD: {
		primary: func(s *domain.PlayerStats) {
			s.PassAttempts++
			s.PassCompletions++
			s.PassTDs++
			s.Points += 6
		},
		receiver: func(s *domain.PlayerStats) {
			s.Receptions++
			s.ReceivingTDs++
			s.Points += 6
		},
	},
	domain.EventIntThrown: {
		primary: func(s *domain.PlayerStats) {
			s.PassAttempts++
			s.InterceptionsThrown++
		},
	},
	domain.EventRushAttempt: {
		primary: func(s *domain.PlayerStats) { s.RushAttempts++ },
	},
	domain.EventRushTD: {
		primary: func(s *domain.PlayerStats) {
			s.RushAttempts++
			s.RushTDs++
			s.Points += 6
		},
	},
	domain.EventReception: {
		primary: func(s *domain.PlayerStats) { s.Receptions++ },
	},
	domain.EventReceptionTD: {
		primary: func(s *domain.PlayerStats) {
			s.Receptions++
			s.ReceivingTDs++
			s.Points += 6
		},
	},
	domain.EventDefInterception: {
		primary: func(s *domain.PlayerStats) { s.DefensiveInterceptions++ },
	},
	domain.EventSack: {
		primary: func(s *domain.PlayerStats) { s.Sacks++ },
	},
	domain.EventFlagPull: {
		primary: func(s *domain.PlayerStats) { s.FlagPulls++ },
	},
	domain.EventDefTD: {
		primary: func(s *domain.PlayerStats) {
			s.DefensiveTDs++
			s.Points += 6
		},
	},
	domain.EventConversion1: {
		primary: func(s *domain.PlayerStats) {
			s.Conversions1pt++
			s.Points++
		},
	},
	domain.EventConversion2: {
		primary: func(s *domain.PlayerStats) {
			s.Conversions2pt++
			s.Points += 2
		},
	},
	domain.EventPATReturn: {
		primary: func(s *domain.PlayerStats) {
			s.DefensivePATReturns++
			s.Points += 2
		},
	},
}

// Compute derives the full stats table for one game from its event log.
// Every roster player gets a zero-seeded bucket; ids referenced by an
// event but absent from the roster get one lazily, so a dangling reference
// never fails aggregation. Unrecognized event tags are skipped. The result
// is a fresh map on every call and is independent of event order.
func Compute(players []domain.Player, events []domain.StatEvent) map[string]domain.PlayerStats {
	buckets := make(map[string]*domain.PlayerStats, len(players))
	for _, p := range players {
		buckets[p.ID] = &domain.PlayerStats{}
	}

	bucket := func(id string) *domain.PlayerStats {
		if b, ok := buckets[id]; ok {
			return b
		}
		b := &domain.PlayerStats{}
		buckets[id] = b
		return b
	}

	for _, ev := range events {
		d, ok := deltas[ev.Type]
		if !ok {
			continue
		}
		d.primary(bucket(ev.PlayerID))
		if d.receiver != nil && ev.ReceiverID != "" {
			d.receiver(bucket(ev.ReceiverID))
		}
	}

	result := make(map[string]domain.PlayerStats, len(buckets))
	for id, b := range buckets {
		result[id] = *b
	}
	return result
}

// BuildBoxScore computes the game's stats table and shapes it for display:
// one line per credited player, highest points first, name as tiebreaker.
// Display order is presentation only; it is not an aggregation input.
func BuildBoxScore(game domain.Game, players []domain.Player) domain.BoxScore {
	table := Compute(players, game.Events)

	roster := make(map[string]domain.Player, len(players))
	for _, p := range players {
		roster[p.ID] = p
	}

	lines := make([]domain.BoxScoreLine, 0, len(table))
	for id, st := range table {
		line := domain.BoxScoreLine{PlayerID: id, Stats: st}
		if p, ok := roster[id]; ok {
			line.Name = p.Name
			line.Jersey = p.Jersey
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Stats.Points != lines[j].Stats.Points {
			return lines[i].Stats.Points > lines[j].Stats.Points
		}
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].PlayerID < lines[j].PlayerID
	})

	return domain.BoxScore{
		GameID:   game.ID,
		Opponent: game.Opponent,
		Date:     game.Date,
		RuleSet:  game.RuleSet,
		Lines:    lines,
	}
}
