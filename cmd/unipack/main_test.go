package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/unipack/internal/batch"
	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/history"
)

// withFlags sets the persistent flag globals for one test.
func withFlags(t *testing.T, config, project string) {
	t.Helper()
	oldConfig, oldProject, oldLevel, oldJSON := cfgFile, projectDir, logLevel, jsonOutput
	cfgFile, projectDir, logLevel, jsonOutput = config, project, "error", false
	t.Cleanup(func() {
		cfgFile, projectDir, logLevel, jsonOutput = oldConfig, oldProject, oldLevel, oldJSON
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unipack.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExportTokens(t *testing.T) {
	tokens := exportTokens([]string{"abc", "def"}, "2.0.0", true)
	assert.Equal(t, []string{"id=abc,def", "version=2.0.0", "generateversionconstants=true"}, tokens)

	args := batch.ParseArgs(tokens)
	assert.Equal(t, []string{"abc", "def"}, args.IDs())
	assert.Equal(t, "2.0.0", args.Version())

	assert.Empty(t, exportTokens(nil, "", false))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "com.exam...", truncate("com.example.tools", 11))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := newLogger("loud")
	assert.Error(t, err)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := writeConfig(t, "[legacy]\nformat = \"zip\"\n")
	withFlags(t, path, "")

	cfg, got, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "zip", cfg.Legacy.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "[legacy]\nformat = \"rar\"\n")
	withFlags(t, path, "")

	_, _, err := loadConfig()
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "Game")
	src := filepath.Join(root, "Assets", "Tools", "Runtime")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Tool.cs"), []byte("class Tool {}"), 0644))

	d := descriptor.New("com.example.tools")
	d.DisplayName = "Example Tools"
	d.SourcePaths = []string{"Assets/Tools/Runtime"}
	d.DestinationPath = "../out"
	require.NoError(t, d.Save(filepath.Join(root, "Assets", "Tools", "tools.upkg.toml")))

	withFlags(t, writeConfig(t, "[history]\nenabled = true\npath = \"history.db\"\n"), root)

	require.NoError(t, runBatch([]string{"-batchmode", "ID=" + d.ID, "version=1.5.0"}))

	manifest, err := os.ReadFile(filepath.Join(tmp, "out", "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"version":"1.5.0"`)

	db, err := history.Open(filepath.Join(root, "history.db"))
	require.NoError(t, err)
	defer db.Close()
	entries, err := history.NewStore(db).List(history.Filter{DescriptorID: &d.ID})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunBatch_ReportsFailedIDs(t *testing.T) {
	root := t.TempDir()
	d := descriptor.New("com.example.broken")
	d.DisplayName = "Broken"
	d.SourcePaths = []string{"Assets/Missing"}
	d.DestinationPath = "Export"
	require.NoError(t, d.Save(filepath.Join(root, "Assets", "broken.upkg.toml")))

	withFlags(t, writeConfig(t, "[history]\nenabled = false\n"), root)

	err := runBatch(nil)
	var batchErr *batch.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, []string{d.ID}, batchErr.IDs())
}
