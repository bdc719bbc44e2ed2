// Package rules holds the static scoring configuration for each rule-set
// variant. It is pure data: nothing here mutates, and the aggregation
// engine never consults it. The PAT-return capability flag gates event
// creation in the store layer only; events already present in a log are
// always honored by aggregation regardless of the game's rule set.
package rules

import "flagstat-service/internal/domain"

// Config describes the scoring parameters of one rule-set variant.
type Config struct {
	RuleSet domain.RuleSet
	Label   string
	// AllowsPATReturn reports whether logging a defensive PAT-return
	// scoring event is legal under this variant.
	AllowsPATReturn bool
	// PATReturnPoints is the value awarded when such an event occurs.
	PATReturnPoints int
	// Conversion descriptions are informational display text only.
	Conversion1Desc string
	Conversion2Desc string
}

// DefaultRuleSet is the fallback applied whenever a document or request
// carries a missing or unknown rule-set tag.
const DefaultRuleSet = domain.RuleSet5v5

var configs = map[domain.RuleSet]Config{
	domain.RuleSet5v5: {
		RuleSet:         domain.RuleSet5v5,
		Label:           "5v5 Flag",
		AllowsPATReturn: true,
		PATReturnPoints: 2,
		Conversion1Desc: "1 point from the 5-yard line",
		Conversion2Desc: "2 points from the 12-yard line",
	},
	domain.RuleSet7v7: {
		RuleSet:         domain.RuleSet7v7,
		Label:           "7v7 Flag",
		AllowsPATReturn: false,
		PATReturnPoints: 2,
		Conversion1Desc: "1 point from the 3-yard line",
		Conversion2Desc: "2 points from the 10-yard line",
	},
	domain.RuleSet8v8: {
		RuleSet:         domain.RuleSet8v8,
		Label:           "8v8 Flag",
		AllowsPATReturn: false,
		PATReturnPoints: 2,
		Conversion1Desc: "1 point from the 3-yard line",
		Conversion2Desc: "2 points from the 10-yard line",
	},
}

// Lookup returns the configuration for rs, falling back to the default
// variant when rs is unknown.
func Lookup(rs domain.RuleSet) Config {
	if cfg, ok := configs[rs]; ok {
		return cfg
	}
	return configs[DefaultRuleSet]
}

// Valid reports whether rs is one of the enumerated variants.
func Valid(rs domain.RuleSet) bool {
	_, ok := configs[rs]
	return ok
}

// Normalize maps unknown tags to the default variant.
func Normalize(rs domain.RuleSet) domain.RuleSet {
	if Valid(rs) {
		return rs
	}
	return DefaultRuleSet
}

// All returns every variant configuration in a stable order.
func All() []Config {
	return []Config{
		configs[domain.RuleSet5v5],
		configs[domain.RuleSet7v7],
		configs[domain.RuleSet8v8],
	}
}

// AllowsEvent reports whether logging an event of type t is legal under
// rule set rs. Only the defensive PAT return is rule-gated; every other
// tag is legal everywhere.
func AllowsEvent(rs domain.RuleSet, t domain.EventType) bool {
	if t != domain.EventPATReturn {
		return true
	}
	return Lookup(rs).AllowsPATReturn
}
