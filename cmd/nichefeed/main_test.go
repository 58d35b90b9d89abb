package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nichefeed/internal/config"
)

const validTemplateDoc = `
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
conflict_dimensions: [follower_count, revenue_30d]
min_products: 1
max_products: 5
priority: 7
`

func setupTest(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	dir := t.TempDir()
	cfg.Templates = dir
	return dir
}

func TestRunValidate_AcceptsCleanTemplate(t *testing.T) {
	dir := setupTest(t)
	path := filepath.Join(dir, "quiet_earners.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validTemplateDoc), 0o644))

	assert.NoError(t, runValidate(validateCmd, []string{path}))
}

func TestRunValidate_RejectsBrokenTemplate(t *testing.T) {
	dir := setupTest(t)
	broken := `
key: Broken Key
title: {zh: "只有中文"}
tag_color: neon
curation_type: viral
min_products: 0
max_products: 0
priority: 99
`
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	assert.Error(t, runValidate(validateCmd, []string{path}))
}

func TestRunValidate_DirectoryDefault(t *testing.T) {
	dir := setupTest(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(validTemplateDoc), 0o644))

	assert.NoError(t, runValidate(validateCmd, nil))
}

func TestRunAssemble_EndToEnd(t *testing.T) {
	dir := setupTest(t)
	tplPath := filepath.Join(dir, "quiet_earners.yaml")
	require.NoError(t, os.WriteFile(tplPath, []byte(validTemplateDoc), 0o644))

	popDoc := `
candidates:
  - product_id: prod-a
    startup: {revenue_30d: 15000}
  - product_id: prod-b
    startup: {revenue_30d: 800}
`
	popPath := filepath.Join(dir, "population.yaml")
	require.NoError(t, os.WriteFile(popPath, []byte(popDoc), 0o644))
	cfg.Population = popPath

	assert.NoError(t, runAssemble(assembleCmd, []string{tplPath}))
}

func TestRunAssemble_InfeasibleNotFatalWithoutStrict(t *testing.T) {
	dir := setupTest(t)
	tplPath := filepath.Join(dir, "quiet_earners.yaml")
	require.NoError(t, os.WriteFile(tplPath, []byte(validTemplateDoc), 0o644))

	popPath := filepath.Join(dir, "population.yaml")
	require.NoError(t, os.WriteFile(popPath, []byte("candidates:\n  - product_id: prod-a\n    startup: {revenue_30d: 5}\n"), 0o644))
	cfg.Population = popPath

	strictAssemble = false
	assert.NoError(t, runAssemble(assembleCmd, []string{tplPath}))

	strictAssemble = true
	defer func() { strictAssemble = false }()
	assert.Error(t, runAssemble(assembleCmd, []string{tplPath}))
}

func TestRunCheck(t *testing.T) {
	dir := setupTest(t)
	doc := `
products:
  - product_id: prod-a
    judgments:
      - theme_key: entry_barrier
        judgment: low
        confidence: high
      - theme_key: compliance_load
        judgment: heavy
        confidence: medium
`
	path := filepath.Join(dir, "judgments.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	// Contradictory pair produces warnings only; command still succeeds.
	assert.NoError(t, runCheck(checkCmd, []string{path}))

	bad := `
products:
  - product_id: prod-b
    judgments:
      - theme_key: entry_barrier
        judgment: impossible
        confidence: high
`
	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte(bad), 0o644))
	assert.Error(t, runCheck(checkCmd, []string{badPath}))
}
