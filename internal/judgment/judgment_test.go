package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nichefeed/internal/vocab"
)

func TestThemeJudgment_Validate(t *testing.T) {
	reg := vocab.Default()

	t.Run("valid enum judgment", func(t *testing.T) {
		j := ThemeJudgment{
			ThemeKey:       "entry_barrier",
			Judgment:       "low",
			Confidence:     ConfidenceHigh,
			EvidenceFields: []string{"revenue_30d"},
		}
		out := j.Validate(reg)
		assert.Empty(t, out.ValidationErrors)
		assert.Empty(t, out.ValidationWarnings)
	})

	t.Run("value outside the enum", func(t *testing.T) {
		j := ThemeJudgment{ThemeKey: "entry_barrier", Judgment: "impossible", Confidence: ConfidenceLow}
		out := j.Validate(reg)
		require.Len(t, out.ValidationErrors, 1)
		assert.Contains(t, out.ValidationErrors[0], `"impossible"`)
	})

	t.Run("unknown theme is a warning not an error", func(t *testing.T) {
		j := ThemeJudgment{ThemeKey: "vibe_quality", Judgment: "good", Confidence: ConfidenceMedium}
		out := j.Validate(reg)
		assert.Empty(t, out.ValidationErrors)
		require.Len(t, out.ValidationWarnings, 1)
		assert.Contains(t, out.ValidationWarnings[0], "vibe_quality")
	})

	t.Run("unknown evidence field warns", func(t *testing.T) {
		j := ThemeJudgment{
			ThemeKey:       "entry_barrier",
			Judgment:       "high",
			Confidence:     ConfidenceHigh,
			EvidenceFields: []string{"lunar_phase"},
		}
		out := j.Validate(reg)
		assert.Empty(t, out.ValidationErrors)
		require.Len(t, out.ValidationWarnings, 1)
		assert.Contains(t, out.ValidationWarnings[0], "lunar_phase")
	})

	t.Run("bad confidence and empty value collect together", func(t *testing.T) {
		j := ThemeJudgment{ThemeKey: "entry_barrier", Confidence: Confidence("certain")}
		out := j.Validate(reg)
		assert.Len(t, out.ValidationErrors, 2)
	})

	t.Run("revalidation replaces, not appends", func(t *testing.T) {
		j := ThemeJudgment{ThemeKey: "entry_barrier", Judgment: "impossible", Confidence: ConfidenceHigh}
		once := j.Validate(reg)
		twice := once.Validate(reg)
		assert.Equal(t, once.ValidationErrors, twice.ValidationErrors)
	})
}

func TestProductJudgments_PutReplacesByKey(t *testing.T) {
	p := NewProductJudgments("prod-1")
	p.Put(ThemeJudgment{ThemeKey: "entry_barrier", Judgment: "low", Confidence: ConfidenceHigh})
	p.Put(ThemeJudgment{ThemeKey: "entry_barrier", Judgment: "high", Confidence: ConfidenceMedium})

	require.Equal(t, 1, p.Len())
	j, ok := p.Get("entry_barrier")
	require.True(t, ok)
	assert.Equal(t, "high", j.Judgment)
	assert.Equal(t, ConfidenceMedium, j.Confidence)
}

func TestProductJudgments_KeysSorted(t *testing.T) {
	p := NewProductJudgments("prod-1")
	p.Put(ThemeJudgment{ThemeKey: "demand_proof", Judgment: "proven", Confidence: ConfidenceHigh})
	p.Put(ThemeJudgment{ThemeKey: "action_speed", Judgment: "weekend", Confidence: ConfidenceHigh})
	p.Put(ThemeJudgment{ThemeKey: "compliance_load", Judgment: "none", Confidence: ConfidenceHigh})

	assert.Equal(t, []string{"action_speed", "compliance_load", "demand_proof"}, p.Keys())
}

func TestProductJudgments_Flatten(t *testing.T) {
	p := NewProductJudgments("prod-1")
	p.Put(ThemeJudgment{ThemeKey: "entry_barrier", Judgment: "low", Confidence: ConfidenceHigh})
	p.Put(ThemeJudgment{ThemeKey: "demand_proof", Judgment: "proven", Confidence: ConfidenceLow})

	flat := p.Flatten()
	assert.Equal(t, map[string]any{"entry_barrier": "low", "demand_proof": "proven"}, flat)
}

func TestProductJudgments_ValidateAll(t *testing.T) {
	reg := vocab.Default()
	p := NewProductJudgments("prod-1")
	p.Put(ThemeJudgment{ThemeKey: "entry_barrier", Judgment: "nonsense", Confidence: ConfidenceHigh})
	p.Put(ThemeJudgment{ThemeKey: "demand_proof", Judgment: "proven", Confidence: ConfidenceHigh})

	failed := p.ValidateAll(reg)
	assert.Equal(t, []string{"entry_barrier"}, failed)

	j, _ := p.Get("entry_barrier")
	assert.NotEmpty(t, j.ValidationErrors, "validated copy is stored back")
}

func TestLayerOf(t *testing.T) {
	l, ok := LayerOf("entry_barrier")
	require.True(t, ok)
	assert.Equal(t, LayerScreening, l)

	l, ok = LayerOf("attribution_driver")
	require.True(t, ok)
	assert.Equal(t, LayerAttribution, l)

	_, ok = LayerOf("unheard_of")
	assert.False(t, ok)
}
