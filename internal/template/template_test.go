package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nichefeed/internal/filter"
	"nichefeed/internal/vocab"
)

const templateDoc = `
key: quiet_earners
title: {zh: "低调赚钱的产品", en: "Quiet Earners"}
description: {zh: "粉丝不多但月入过万", en: "Few followers, five figures a month"}
insight: {zh: "分发不等于增长", en: "Distribution is not growth"}
cta: {zh: "看看他们怎么做", en: "See how they do it"}
tag: {zh: "反差", en: "Contrast"}
tag_color: emerald
curation_type: contrast
filter_rules:
  startup:
    revenue_30d: {min: 10000}
    follower_count: {max: 500}
conflict_dimensions: [follower_count, revenue_30d]
min_products: 3
max_products: 8
priority: 7
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quiet_earners.yaml")
	require.NoError(t, os.WriteFile(path, []byte(templateDoc), 0o644))

	tpl, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "quiet_earners", tpl.Key)
	assert.Equal(t, TypeContrast, tpl.CurationType)
	assert.Equal(t, "Quiet Earners", tpl.Title.EN)
	assert.Equal(t, "低调赚钱的产品", tpl.Title.ZH)
	assert.Equal(t, 3, tpl.MinProducts)

	rng, ok := tpl.FilterRules[vocab.GroupStartup]["revenue_30d"].(filter.NumericRange)
	require.True(t, ok)
	require.NotNil(t, rng.Min)
	assert.Equal(t, 10000.0, *rng.Min)

	// Loaded templates pass validation end to end.
	v := NewValidator(vocab.Default())
	assert.Empty(t, v.Validate(tpl))
}

func TestLoadDir_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("key: b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("key: a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	templates, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "a", templates[0].Key)
	assert.Equal(t, "b", templates[1].Key)
}

func TestBilingual(t *testing.T) {
	full := Bilingual{ZH: "你好", EN: "hello"}
	assert.True(t, full.Complete())
	assert.False(t, full.Empty())
	assert.Equal(t, "你好", full.Pick("zh"))
	assert.Equal(t, "hello", full.Pick("en"))
	assert.Equal(t, "hello", full.Pick("fr"), "unknown languages fall back to English")

	half := Bilingual{ZH: "你好"}
	assert.False(t, half.Complete())
	assert.False(t, half.Empty())
}

func TestCuratorRole(t *testing.T) {
	for _, ct := range CurationTypes {
		role := CuratorRole(ct)
		assert.True(t, role.Complete(), "curation type %s has a full bilingual role", ct)
	}
}

func TestPaletteHas(t *testing.T) {
	assert.True(t, PaletteHas("emerald"))
	assert.False(t, PaletteHas("chartreuse"))
	assert.False(t, PaletteHas("Emerald"), "palette membership is case-sensitive")
}
