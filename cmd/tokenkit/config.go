package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/tokenkit"
	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/projection"
)

var k = koanf.New(".")

// flagKeys maps flag names to their config keys. Flags not listed use
// their own name.
var flagKeys = map[string]string{
	"storage":      "storage.driver",
	"storage-path": "storage.path",
	"log-level":    "log.level",
	"addr":         "serve.addr",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".tokenkit.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return flagKey(f.Name), posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TOKENKIT_* prefix)
	if err := k.Load(env.Provider("TOKENKIT_", ".", func(s string) string {
		// TOKENKIT_STORAGE_DRIVER -> storage.driver
		// TOKENKIT_SERVE_ADDR -> serve.addr
		// TOKENKIT_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TOKENKIT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return name
}

// buildDesign reads the design: the design file when one is configured,
// otherwise the design section of the config.
func buildDesign() (tokenkit.Design, string, error) {
	if path := getStringWithDefault("design-file", ""); path != "" {
		d, err := tokenkit.LoadDesign(path)
		return d, path, err
	}

	var d tokenkit.Design
	if !k.Exists("design") {
		return d, "", nil
	}
	if err := k.UnmarshalWithConf("design", &d, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return d, "", fmt.Errorf("decoding design section: %w", err)
	}
	if err := d.Validate(); err != nil {
		return d, "", fmt.Errorf("design section: %w", err)
	}
	return d, "", nil
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig(log *logging.Logger) (tokenkit.Config, error) {
	design, path, err := buildDesign()
	if err != nil {
		return tokenkit.Config{}, err
	}
	format, err := export.ParseFormat(getStringWithDefault("format", "css"))
	if err != nil {
		return tokenkit.Config{}, err
	}

	return tokenkit.Config{
		Design:     design,
		DesignFile: path,
		Output:     getStringWithDefault("output", ""),
		Format:     format,
		Selector:   getStringWithDefault("selector", export.DefaultSelector),
		Storage:    buildStorageConfig(),
		Log:        log,
		Verbose:    getBoolWithDefault("verbose", false),
	}, nil
}

func buildStorageConfig() tokenkit.StorageConfig {
	return tokenkit.StorageConfig{
		Driver: getStringWithDefault("storage.driver", "memory"),
		Path:   getStringWithDefault("storage.path", ".tokenkit"),
	}
}

// buildLogger creates the diagnostics logger. --verbose lowers the level
// to debug unless a level was configured explicitly.
func buildLogger(w io.Writer) (*logging.Logger, error) {
	level := getStringWithDefault("log.level", "info")
	if getBoolWithDefault("verbose", false) && !k.Exists("log.level") {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:         level,
		HumanReadable: getBoolWithDefault("log.human", true),
		Writer:        w,
	})
}

func syncDelay() time.Duration {
	return getDurationWithDefault("debounce", projection.DefaultDelay)
}

// getStringWithDefault returns the string at key, or defaultVal when unset or empty.
func getStringWithDefault(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithDefault returns the bool at key, or defaultVal when unset.
func getBoolWithDefault(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getIntWithDefault returns the int at key, or defaultVal when unset.
func getIntWithDefault(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}

// getDurationWithDefault returns the duration at key, or defaultVal when unset.
func getDurationWithDefault(key string, defaultVal time.Duration) time.Duration {
	if k.Exists(key) {
		return k.Duration(key)
	}
	return defaultVal
}
