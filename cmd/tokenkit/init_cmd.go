package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .tokenkit.yaml config file",
	Long:  `Create a .tokenkit.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".tokenkit.yaml"); err == nil && !force {
			return fmt.Errorf(".tokenkit.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".tokenkit.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .tokenkit.yaml")
		return nil
	},
}

const defaultConfig = `# tokenkit configuration
# Docs: https://github.com/yacobolo/tokenkit

# Export settings
output: web/tokens.css
format: css                # css | json | yaml
selector: ":root"
debounce: 500ms            # quiet period before scales are re-projected

log:
  level: info
  human: true

# Persisted typography, shadow, layout and interaction state
storage:
  driver: memory           # memory | file | sqlite
  path: .tokenkit

serve:
  addr: 127.0.0.1:7420

# Design inputs. Every section is optional.
design:
  dark: false
  color:
    base: "#3b82f6"        # hex or CSS color name; use brand for a catalog hue
    neutral: slate
    autoNeutral: true
    policy: denylist       # denylist | contrast
  typography:
    font: Pretendard
    baseSize: 16
    ratio: 1.25
  spacing:
    baseUnit: 4            # 4 | 8
  radius:
    md: 6
  layout:
    active: desktop        # mobile | tablet | desktop
  interaction:
    hover: 0.9
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
