package rules

import (
	"testing"

	"flagstat-service/internal/domain"
)

func TestAllVariants(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(all))
	}
	seen := make(map[domain.RuleSet]bool)
	for _, cfg := range all {
		if cfg.Label == "" {
			t.Fatalf("variant %s missing label", cfg.RuleSet)
		}
		if cfg.Conversion1Desc == "" || cfg.Conversion2Desc == "" {
			t.Fatalf("variant %s missing conversion descriptions", cfg.RuleSet)
		}
		seen[cfg.RuleSet] = true
	}
	for _, rs := range []domain.RuleSet{domain.RuleSet5v5, domain.RuleSet7v7, domain.RuleSet8v8} {
		if !seen[rs] {
			t.Fatalf("variant %s missing from All()", rs)
		}
	}
}

func TestPATReturnCapability(t *testing.T) {
	if !Lookup(domain.RuleSet5v5).AllowsPATReturn {
		t.Fatalf("expected 5v5 to allow PAT returns")
	}
	if Lookup(domain.RuleSet7v7).AllowsPATReturn {
		t.Fatalf("expected 7v7 to disallow PAT returns")
	}
	if Lookup(domain.RuleSet8v8).AllowsPATReturn {
		t.Fatalf("expected 8v8 to disallow PAT returns")
	}
	if got := Lookup(domain.RuleSet5v5).PATReturnPoints; got != 2 {
		t.Fatalf("expected PAT return worth 2, got %d", got)
	}
}

func TestLookupFallsBackOnUnknown(t *testing.T) {
	cfg := Lookup(domain.RuleSet("9V9"))
	if cfg.RuleSet != DefaultRuleSet {
		t.Fatalf("expected fallback to %s, got %s", DefaultRuleSet, cfg.RuleSet)
	}
}

func TestValidAndNormalize(t *testing.T) {
	if !Valid(domain.RuleSet7v7) {
		t.Fatalf("expected 7V7 to be valid")
	}
	if Valid(domain.RuleSet("")) {
		t.Fatalf("expected empty tag to be invalid")
	}
	if got := Normalize(domain.RuleSet("bogus")); got != DefaultRuleSet {
		t.Fatalf("expected normalize to default, got %s", got)
	}
	if got := Normalize(domain.RuleSet8v8); got != domain.RuleSet8v8 {
		t.Fatalf("expected known tag preserved, got %s", got)
	}
}

func TestAllowsEvent(t *testing.T) {
	if AllowsEvent(domain.RuleSet7v7, domain.EventPATReturn) {
		t.Fatalf("expected PAT return rejected under 7v7")
	}
	if !AllowsEvent(domain.RuleSet5v5, domain.EventPATReturn) {
		t.Fatalf("expected PAT return allowed under 5v5")
	}
	// Only the PAT return is rule-gated.
	for _, et := range domain.EventTypes() {
		if et == domain.EventPATReturn {
			continue
		}
		if !AllowsEvent(domain.RuleSet7v7, et) {
			t.Fatalf("expected %s allowed under 7v7", et)
		}
	}
}
