package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tokenkit"
	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/scale"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args against a missing config file and
// returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetKoanf()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	rootCmd.SetArgs(append(args, "--config", missing))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeFile(t, t.TempDir(), ".tokenkit.yaml", `
output: web/tokens.css
format: json
verbose: true
storage:
  driver: sqlite
  path: state.db
design:
  color:
    base: "#e5484d"
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "web/tokens.css", k.String("output"))
	assert.Equal(t, "json", k.String("format"))
	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "sqlite", k.String("storage.driver"))
	assert.Equal(t, "state.db", k.String("storage.path"))
	assert.Equal(t, "#e5484d", k.String("design.color.base"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.tokenkit.yaml"))

	config, err := buildGenerateConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, tokenkit.FormatCSS, config.Format)
	assert.Equal(t, ":root", config.Selector)
	assert.Empty(t, config.Output)
	assert.Empty(t, config.DesignFile)
	assert.Equal(t, tokenkit.StorageConfig{Driver: "memory", Path: ".tokenkit"}, config.Storage)
	assert.Nil(t, config.Design.Color)
	assert.Equal(t, 500_000_000, int(syncDelay()))
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeFile(t, t.TempDir(), ".tokenkit.yaml", `
storage:
  driver: file
serve:
  addr: 127.0.0.1:9000
`)
	t.Setenv("TOKENKIT_STORAGE_DRIVER", "sqlite")
	t.Setenv("TOKENKIT_DEBOUNCE", "50ms")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "sqlite", k.String("storage.driver"))
	assert.Equal(t, "127.0.0.1:9000", k.String("serve.addr"))
	assert.Equal(t, 50_000_000, int(syncDelay()))
}

func TestBuildGenerateConfig_DesignSection(t *testing.T) {
	resetKoanf()

	configPath := writeFile(t, t.TempDir(), ".tokenkit.yaml", `
format: yaml
design:
  dark: true
  color:
    base: "#e5484d"
    neutral: mauve
  typography:
    ratio: 1.333
  spacing:
    baseUnit: 8
  radius:
    md: 10
  interaction:
    hover: 0.2
  tokens:
    - id: brand-accent
      name: Brand Accent
      value: "#ff00aa"
      type: color
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildGenerateConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, tokenkit.FormatYAML, config.Format)

	d := config.Design
	require.NotNil(t, d.Dark)
	assert.True(t, *d.Dark)
	require.NotNil(t, d.Color)
	assert.Equal(t, "#e5484d", d.Color.Base)
	assert.Equal(t, "mauve", d.Color.Neutral)
	require.NotNil(t, d.Typography)
	assert.InDelta(t, 1.333, d.Typography.Ratio, 0.0001)
	require.NotNil(t, d.Spacing)
	assert.Equal(t, 8, d.Spacing.BaseUnit)
	assert.Equal(t, 10, d.Radius["md"])
	assert.InDelta(t, 0.2, d.Interaction[scale.OpacityState("hover")], 0.0001)
	require.Len(t, d.Tokens, 1)
	assert.Equal(t, "brand-accent", d.Tokens[0].ID)
}

func TestBuildGenerateConfig_InvalidDesignSection(t *testing.T) {
	resetKoanf()

	configPath := writeFile(t, t.TempDir(), ".tokenkit.yaml", `
design:
  spacing:
    baseUnit: 5
`)
	require.NoError(t, loadConfigFromPath(configPath))

	_, err := buildGenerateConfig(nil)
	assert.ErrorIs(t, err, app.ErrInvalidValue)
}

func TestBuildGenerateConfig_DesignFileWins(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	designPath := writeFile(t, dir, "design.yaml", "radius:\n  md: 12\n")
	configPath := writeFile(t, dir, ".tokenkit.yaml", "design-file: "+designPath+"\ndesign:\n  radius:\n    md: 3\n")
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildGenerateConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, designPath, config.DesignFile)
	assert.Equal(t, 12, config.Design.Radius["md"])
}

func TestBuildGenerateConfig_UnknownFormat(t *testing.T) {
	resetKoanf()
	k.Set("format", "toml")

	_, err := buildGenerateConfig(nil)
	assert.Error(t, err)
}

func TestBuildLogger_RejectsUnknownLevel(t *testing.T) {
	resetKoanf()
	k.Set("log.level", "loud")

	_, err := buildLogger(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "storage.driver", flagKey("storage"))
	assert.Equal(t, "serve.addr", flagKey("addr"))
	assert.Equal(t, "output", flagKey("output"))
}

func TestGenerateCommand_Stdout(t *testing.T) {
	stdout, _, err := execute(t, "generate")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, ":root {\n"), stdout)
	assert.Contains(t, stdout, "--space-md: 16px;")
}

func TestGenerateCommand_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, ".tokenkit.yaml", "format: yaml\nselector: \":root\"\n")

	resetKoanf()
	resetFlags(rootCmd)
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"generate", "--config", configPath, "--format", "json"})
	require.NoError(t, rootCmd.Execute())

	assert.True(t, json.Valid(stdout.Bytes()), stdout.String())
}

func TestGenerateCommand_WritesFileAndReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tokens.css")

	stdout, _, err := execute(t, "generate", "-o", out, "--report", "json")
	require.NoError(t, err)

	var report tokenkit.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, out, report.Summary.Output)
	assert.Positive(t, report.Summary.TotalTokens)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "--space-md: 16px;")
}

func TestGenerateCommand_Quiet(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tokens.css")

	stdout, _, err := execute(t, "generate", "-o", out, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.FileExists(t, out)
}

func TestScaleCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"color", []string{"scale", "#e5484d"}, "nearest catalog brand:"},
		{"spacing", []string{"scale", "--spacing", "8"}, "128px"},
		{"ratio", []string{"scale", "--ratio", "1.25"}, "Major Third"},
		{"palette", []string{"scale", "--palette", "indigo"}, "recommended neutrals: slate"},
		{"list", []string{"scale", "--list"}, "Golden Ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestScaleCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"scale"}},
		{"invalid color", []string{"scale", "notacolor"}},
		{"unknown palette", []string{"scale", "--palette", "chartreuse"}},
		{"unsupported spacing", []string{"scale", "--spacing", "6"}},
		{"unknown ratio", []string{"scale", "--ratio", "1.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "theme.css", ":root {\n  --brand: #ff0000;\n  --gap: 8px;\n}\n")

	stdout, stderr, err := execute(t, "import", filepath.Join(dir, "*.css"), "--format", "css")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--brand: #ff0000;")
	assert.Contains(t, stdout, "--gap: 8px;")
	assert.Contains(t, stderr, "2 tokens from 1 file")
}

func TestPreviewCommand_HTML(t *testing.T) {
	page := filepath.Join(t.TempDir(), "preview.html")

	stdout, _, err := execute(t, "preview", "--html", page, "--title", "Brand tokens")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote preview to")

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!doctype html>"))
	assert.Contains(t, string(data), "<title>Brand tokens</title>")
}

func TestPreviewCommand_Terminal(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	stdout, _, err := execute(t, "preview")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Spacing")
	assert.Contains(t, stdout, "--space-md")
}

func TestWatchCommand_RequiresDesignFile(t *testing.T) {
	_, _, err := execute(t, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--design-file")
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := execute(t, "init")
	require.NoError(t, err)

	// Verify file was created and parses as a valid design
	data, err := os.ReadFile(".tokenkit.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "storage:")
	assert.Contains(t, string(data), "design:")

	resetKoanf()
	require.NoError(t, loadConfigFromPath(".tokenkit.yaml"))
	_, err = buildGenerateConfig(nil)
	assert.NoError(t, err)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".tokenkit.yaml", []byte("existing"), 0644))

	_, _, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".tokenkit.yaml", []byte("existing"), 0644))

	_, _, err := execute(t, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(".tokenkit.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "serve:")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tokenkit dev\n", stdout)
}

func TestGetStringWithDefault(t *testing.T) {
	resetKoanf()

	// No keys set, should return default
	assert.Equal(t, "default", getStringWithDefault("config.key", "default"))
	k.Set("config.key", "set")
	assert.Equal(t, "set", getStringWithDefault("config.key", "default"))
}

func TestGetBoolWithDefault(t *testing.T) {
	resetKoanf()

	// No keys set, should return default
	assert.False(t, getBoolWithDefault("config.key", false))
	assert.True(t, getBoolWithDefault("config.key", true))
	k.Set("config.key", false)
	assert.False(t, getBoolWithDefault("config.key", true))
}

func TestGetIntWithDefault(t *testing.T) {
	resetKoanf()

	assert.Equal(t, 40, getIntWithDefault("config.key", 40))
	k.Set("config.key", 7)
	assert.Equal(t, 7, getIntWithDefault("config.key", 40))
}
