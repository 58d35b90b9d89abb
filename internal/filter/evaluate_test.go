package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nichefeed/internal/judgment"
	"nichefeed/internal/vocab"
)

func fptr(f float64) *float64 { return &f }

func snapshotFixture() Snapshot {
	pj := judgment.NewProductJudgments("prod-1")
	pj.Put(judgment.ThemeJudgment{ThemeKey: "entry_barrier", Judgment: "low", Confidence: judgment.ConfidenceHigh})

	return BuildSnapshot(
		map[string]any{
			"revenue_30d":     12000.0,
			"follower_count":  150,
			"pricing_model":   "subscription",
			"is_bootstrapped": true,
			"tags":            []string{"ai-tooling", "devtools"},
		},
		map[string]any{
			"market_scope": "vertical",
		},
		pj,
		map[string]any{
			"social_proof_count": 4,
		},
	)
}

func TestEvaluate_AllConstraintsMustHold(t *testing.T) {
	rules := RuleSet{
		vocab.GroupStartup: {
			"revenue_30d":   NumericRange{Min: fptr(10000)},
			"pricing_model": AnyOf{Values: []string{"subscription", "usage_based"}},
		},
		vocab.GroupSelection: {
			"market_scope": AnyOf{Values: []string{"vertical"}},
		},
		vocab.GroupMotherTheme: {
			"entry_barrier": AnyOf{Values: []string{"low", "medium"}},
		},
	}

	matches, failed := Evaluate(snapshotFixture(), rules)
	assert.True(t, matches)
	assert.Empty(t, failed)
}

func TestEvaluate_SingleFailureBreaksMatch(t *testing.T) {
	rules := RuleSet{
		vocab.GroupStartup: {
			"revenue_30d":   NumericRange{Min: fptr(10000)},
			"pricing_model": AnyOf{Values: []string{"one_time"}},
		},
	}

	matches, failed := Evaluate(snapshotFixture(), rules)
	assert.False(t, matches)
	require.Len(t, failed, 1)
	assert.Equal(t, "pricing_model", failed[0].Field)
	assert.Equal(t, "subscription", failed[0].Actual)
}

func TestEvaluate_MissingFieldFailsClosed(t *testing.T) {
	rules := RuleSet{
		vocab.GroupLandingPage: {
			"headline_clarity": AnyOf{Values: []string{"sharp"}},
		},
	}

	matches, failed := Evaluate(snapshotFixture(), rules)
	assert.False(t, matches)
	require.Len(t, failed, 1)
	assert.Equal(t, vocab.GroupLandingPage, failed[0].Group)
	assert.Equal(t, "headline_clarity", failed[0].Field)
	assert.Equal(t, "(absent)", failed[0].Actual)
}

func TestEvaluate_MissingGroupFailsClosed(t *testing.T) {
	snap := BuildSnapshot(map[string]any{"revenue_30d": 500.0}, nil, nil, nil)
	rules := RuleSet{
		vocab.GroupMotherTheme: {
			"demand_proof": AnyOf{Values: []string{"proven"}},
		},
	}

	matches, failed := Evaluate(snap, rules)
	assert.False(t, matches)
	require.Len(t, failed, 1)
	assert.Equal(t, "(absent)", failed[0].Actual)
}

func TestEvaluate_NumericBoundsInclusive(t *testing.T) {
	rules := RuleSet{
		vocab.GroupStartup: {
			"revenue_30d": NumericRange{Min: fptr(12000), Max: fptr(12000)},
		},
	}
	matches, _ := Evaluate(snapshotFixture(), rules)
	assert.True(t, matches, "exact boundary value satisfies inclusive bounds")
}

func TestEvaluate_IntegerValuesCompareNumerically(t *testing.T) {
	rules := RuleSet{
		vocab.GroupStartup: {
			"follower_count": NumericRange{Max: fptr(200)},
		},
		vocab.GroupLandingPage: {
			"social_proof_count": NumericRange{Min: fptr(3)},
		},
	}
	matches, failed := Evaluate(snapshotFixture(), rules)
	assert.True(t, matches, "failures: %v", failed)
}

func TestEvaluate_MembershipIsCaseSensitive(t *testing.T) {
	rules := RuleSet{
		vocab.GroupSelection: {
			"market_scope": AnyOf{Values: []string{"Vertical"}},
		},
	}
	matches, _ := Evaluate(snapshotFixture(), rules)
	assert.False(t, matches)
}

func TestEvaluate_ContainsOverListValues(t *testing.T) {
	t.Run("token inside one element", func(t *testing.T) {
		rules := RuleSet{
			vocab.GroupStartup: {"tags": Contains{Tokens: []string{"devtool"}}},
		}
		matches, _ := Evaluate(snapshotFixture(), rules)
		assert.True(t, matches)
	})

	t.Run("no token in any element", func(t *testing.T) {
		rules := RuleSet{
			vocab.GroupStartup: {"tags": Contains{Tokens: []string{"gaming", "crypto"}}},
		}
		matches, _ := Evaluate(snapshotFixture(), rules)
		assert.False(t, matches)
	})

	t.Run("substring of a scalar value", func(t *testing.T) {
		rules := RuleSet{
			vocab.GroupStartup: {"pricing_model": Contains{Tokens: []string{"script"}}},
		}
		matches, _ := Evaluate(snapshotFixture(), rules)
		assert.True(t, matches)
	})
}

func TestEvaluate_BoolExactMatch(t *testing.T) {
	rules := RuleSet{
		vocab.GroupStartup: {"is_bootstrapped": BoolEquals{Value: false}},
	}
	matches, failed := Evaluate(snapshotFixture(), rules)
	assert.False(t, matches)
	require.Len(t, failed, 1)
	assert.Equal(t, "false", failed[0].Expected)
}

func TestEvaluate_MistypedValueFailsClosed(t *testing.T) {
	snap := BuildSnapshot(map[string]any{"revenue_30d": "lots"}, nil, nil, nil)
	rules := RuleSet{
		vocab.GroupStartup: {"revenue_30d": NumericRange{Min: fptr(1)}},
	}
	matches, failed := Evaluate(snap, rules)
	assert.False(t, matches)
	require.Len(t, failed, 1)
	assert.Equal(t, "lots", failed[0].Actual)
}

func TestEvaluate_FailureOrderIsDeterministic(t *testing.T) {
	snap := BuildSnapshot(nil, nil, nil, nil)
	rules := RuleSet{
		vocab.GroupSelection: {
			"market_scope":       AnyOf{Values: []string{"vertical"}},
			"feature_complexity": AnyOf{Values: []string{"simple"}},
		},
		vocab.GroupStartup: {
			"revenue_30d": NumericRange{Min: fptr(1)},
		},
	}

	_, failed := Evaluate(snap, rules)
	require.Len(t, failed, 3)
	assert.Equal(t, vocab.GroupStartup, failed[0].Group)
	assert.Equal(t, "feature_complexity", failed[1].Field, "fields sorted within group")
	assert.Equal(t, "market_scope", failed[2].Field)
}

func TestEvaluate_Idempotent(t *testing.T) {
	rules := RuleSet{
		vocab.GroupStartup: {"revenue_30d": NumericRange{Min: fptr(99999)}},
	}
	snap := snapshotFixture()

	m1, f1 := Evaluate(snap, rules)
	m2, f2 := Evaluate(snap, rules)
	assert.Equal(t, m1, m2)
	assert.Equal(t, f1, f2)
}

func TestFailedConstraint_String(t *testing.T) {
	f := FailedConstraint{Group: vocab.GroupStartup, Field: "revenue_30d", Expected: ">= 10000", Actual: "5000"}
	assert.Equal(t, "startup.revenue_30d: expected >= 10000, got 5000", f.String())
}
