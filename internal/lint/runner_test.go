package lint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-analytics/configlint/internal/config"
	"github.com/calder-analytics/configlint/internal/content"
	"github.com/calder-analytics/configlint/internal/document"
	"github.com/calder-analytics/configlint/internal/schema"
)

// testEnv lays out a schema store and returns a configured Runner plus the
// directory configs can be written into.
func testEnv(t *testing.T) (*Runner, string) {
	t.Helper()
	root := t.TempDir()

	schemaDir := filepath.Join(root, "schemas")
	require.NoError(t, os.MkdirAll(filepath.Join(schemaDir, "templates"), 0755))
	general := `---
sections:
  dag:
    type: mapping
    fields:
      owner: string
      schedule: string
  output:
    type: mapping
    fields:
      format: string
  inputs:
    type: mapping
    fields:
      sql_template: string
`
	tmpl := `---
template: monthly_revenue
params:
  limit: integer
  region: string
`
	require.NoError(t, os.WriteFile(filepath.Join(schemaDir, "general.yaml"), []byte(general), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(schemaDir, "templates", "monthly_revenue.yaml"), []byte(tmpl), 0644))

	cfg := config.Default()
	cfg.SchemaDir = schemaDir
	cfg.TemplateDir = filepath.Join(root, "sql_templates")

	runner, err := NewRunner(cfg)
	require.NoError(t, err)

	configsDir := filepath.Join(root, "configs")
	require.NoError(t, os.MkdirAll(configsDir, 0755))
	return runner, configsDir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun_FixesStyleThenValidatesContent(t *testing.T) {
	runner, dir := testEnv(t)
	path := writeConfig(t, dir, "dag:\n  owner: data   \n  schedule: daily\noutput:\n  format: csv\ninputs:\n  sql_template: monthly_revenue.sql\n  sql_params:\n    limit: \"ten\"\n    region: emea\n")

	rep, err := runner.Run(path)
	require.NoError(t, err)

	assert.True(t, rep.Fixed, "style pass should have rewritten the file")
	assert.Empty(t, rep.StyleViolations)
	require.NoError(t, rep.ContentErr)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, content.KindError, rep.Diagnostics[0].Kind)
	assert.Equal(t,
		"[error] Field 'sql_params.limit' should be 'integer', got 'string'.",
		rep.Diagnostics[0].String())
	assert.True(t, rep.HasErrors())

	// The style fixes landed on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "---\n")
	assert.NotContains(t, string(data), "data   ")
}

func TestRun_CleanFile(t *testing.T) {
	runner, dir := testEnv(t)
	path := writeConfig(t, dir, "---\ndag:\n  owner: data\n  schedule: daily\noutput:\n  format: csv\ninputs:\n  sql_template: monthly_revenue.sql\n  sql_params:\n    limit: 100\n    region: emea\n")

	rep, err := runner.Run(path)
	require.NoError(t, err)

	assert.False(t, rep.Fixed)
	assert.Empty(t, rep.StyleViolations)
	assert.Empty(t, rep.Diagnostics)
	require.NoError(t, rep.ContentErr)
	assert.False(t, rep.HasErrors())
}

func TestRun_MissingTemplateReferenceSkipsContentPhase(t *testing.T) {
	runner, dir := testEnv(t)
	path := writeConfig(t, dir, "---\ndag:\n  owner: data\n  schedule: daily\n")

	rep, err := runner.Run(path)
	require.NoError(t, err)

	// Style results are still surfaced; the content phase is skipped.
	assert.Empty(t, rep.StyleViolations)
	assert.True(t, errors.Is(rep.ContentErr, document.ErrMissingTemplateReference))
	assert.True(t, rep.HasErrors())
}

func TestRun_UnknownTemplateSkipsContentPhase(t *testing.T) {
	runner, dir := testEnv(t)
	path := writeConfig(t, dir, "---\ninputs:\n  sql_template: quarterly_churn.sql\n")

	rep, err := runner.Run(path)
	require.NoError(t, err)

	assert.True(t, errors.Is(rep.ContentErr, schema.ErrUnknownTemplate))
	assert.True(t, rep.HasErrors())
}

func TestRunStyle_DoesNotTouchContent(t *testing.T) {
	runner, dir := testEnv(t)
	path := writeConfig(t, dir, "dag:\n  owner: data  \n")

	rep, err := runner.RunStyle(path)
	require.NoError(t, err)

	assert.True(t, rep.Fixed)
	assert.Nil(t, rep.Diagnostics)
	assert.NoError(t, rep.ContentErr)
	assert.False(t, rep.HasErrors())
}

func TestRunContent_DoesNotModifyFile(t *testing.T) {
	runner, dir := testEnv(t)
	// Deliberately style-dirty: no marker, trailing spaces.
	body := "inputs:\n  sql_template: monthly_revenue.sql   \n"
	path := writeConfig(t, dir, body)

	rep, err := runner.RunContent(path)
	require.NoError(t, err)
	require.NoError(t, rep.ContentErr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data), "check must never modify the file")

	// dag, output and both params are absent: info diagnostics, no errors.
	assert.Len(t, rep.Diagnostics, 4)
	assert.Equal(t, 0, content.CountErrors(rep.Diagnostics))
	assert.False(t, rep.HasErrors())
}

func TestRun_WarningsAloneAreNotFailures(t *testing.T) {
	runner, dir := testEnv(t)
	long := "---\ndag:\n  owner: data\n  schedule: daily\noutput:\n  format: csv\ninputs:\n  sql_template: monthly_revenue.sql\n  sql_params:\n    limit: 100\n    region: "
	for len(long) < 400 {
		long += "e"
	}
	long += "\n"
	path := writeConfig(t, dir, long)

	rep, err := runner.Run(path)
	require.NoError(t, err)

	require.Len(t, rep.StyleViolations, 1)
	assert.Equal(t, config.SeverityWarning, rep.StyleViolations[0].Severity)
	assert.False(t, rep.HasErrors(), "a line-length warning alone must not fail the run")
}
