package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tokenkit/internal/preview"
	"github.com/yacobolo/tokenkit/internal/scale"
)

var scaleCmd = &cobra.Command{
	Use:   "scale [color]",
	Short: "Print a generated scale",
	Long: `Print the 10-stop scale generated from a hex or CSS named color,
a 12-step catalog palette (--palette), a spacing scale (--spacing)
or a modular type scale (--ratio).`,
	Example: `  tokenkit scale "#e5484d"
  tokenkit scale --palette indigo --dark
  tokenkit scale --spacing 8
  tokenkit scale --ratio 1.25 --base 16
  tokenkit scale --list`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runScale,
}

func init() {
	f := scaleCmd.Flags()
	f.String("palette", "", "Catalog brand or neutral name")
	f.Bool("dark", false, "Use the dark variant of the palette")
	f.Int("spacing", 0, "Spacing base unit (4 or 8)")
	f.Float64("ratio", 0, "Type scale ratio")
	f.Float64("base", 16, "Type scale base size in px")
	f.Bool("list", false, "List catalog brands, neutrals and ratios")
}

func runScale(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reporter := preview.NewReporter(out, getBoolWithDefault("color", false))
	flags := cmd.Flags()

	if list, _ := flags.GetBool("list"); list {
		fmt.Fprintf(out, "brands:   %s\n", strings.Join(scale.Brands(), ", "))
		fmt.Fprintf(out, "neutrals: %s\n", strings.Join(scale.Neutrals(), ", "))
		for _, r := range scale.Ratios() {
			fmt.Fprintf(out, "ratio:    %.3f %s\n", r.Value, r.Name)
		}
		return nil
	}

	if name, _ := flags.GetString("palette"); name != "" {
		dark, _ := flags.GetBool("dark")
		steps, ok := scale.Palette(name, dark)
		if !ok {
			return fmt.Errorf("unknown palette %q", name)
		}
		reporter.PrintPalette(name, steps)
		if recommended := scale.RecommendedNeutrals(name); len(recommended) > 0 {
			fmt.Fprintf(out, "recommended neutrals: %s\n", strings.Join(recommended, ", "))
		}
		return nil
	}

	if unit, _ := flags.GetInt("spacing"); unit != 0 {
		items, err := scale.GenerateSpacingScale(unit)
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Fprintf(out, "  %-8s %4dpx\n", item.ID, item.Value)
		}
		return nil
	}

	if value, _ := flags.GetFloat64("ratio"); value != 0 {
		ratio, err := scale.LookupRatio(value)
		if err != nil {
			return err
		}
		base, _ := flags.GetFloat64("base")
		fmt.Fprintf(out, "%s (%.3f), base %gpx\n", ratio.Name, ratio.Value, base)
		for _, item := range scale.GenerateTypeScale(scale.DefaultTypeScale(), base, ratio.Value) {
			fmt.Fprintf(out, "  %-12s %6.2fpx  %s\n", item.ID, item.Size, item.Name)
		}
		return nil
	}

	if len(args) == 0 {
		return errors.New("a color, --palette, --spacing, --ratio or --list is required")
	}
	s := scale.GenerateColorScale(args[0])
	reporter.PrintScale(args[0], s)
	if s.Empty() {
		return fmt.Errorf("invalid color %q", args[0])
	}
	if brand, ok := scale.NearestBrand(args[0]); ok {
		fmt.Fprintf(out, "nearest catalog brand: %s\n", brand)
	}
	return nil
}
