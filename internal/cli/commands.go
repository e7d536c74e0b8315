package cli

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  salat config set latitude 21.3891\n  salat config set longitude 39.8579\n  salat config set method isna\n  salat config set madhab hanafi\n  salat config set time_format 12h\n  salat config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
		}
		// Add the full convention name next to the method identifier.
		if key == "method" && val != "" {
			if m, err := method.Parse(val); err == nil {
				shown = fmt.Sprintf("%s (%s)", val, m.Description())
			}
		}
		fmt.Printf("  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation conventions and their solar depression angles.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println()
			fmt.Printf("  %s\n", display.Bold("Calculation Methods"))
			fmt.Println()

			tbl := display.NewTable([]string{"Name", "Fajr", "Isha", "Convention"})
			for _, m := range method.All() {
				p, err := m.Params()
				if err != nil {
					return err
				}

				isha := fmt.Sprintf("%.1f°", p.IshaAngle)
				if p.UsesInterval() {
					isha = fmt.Sprintf("%d min after Maghrib", p.IshaInterval)
				}

				tbl.AddRow([]string{
					m.String(),
					fmt.Sprintf("%.1f°", p.FajrAngle),
					isha,
					m.Description(),
				})
			}
			fmt.Print(tbl.Render())

			fmt.Println()
			fmt.Println("  Use --method <name> or 'salat config set method <name>' to select one.")
			fmt.Printf("  Default: %s.\n", method.Default)
			fmt.Println()
			return nil
		},
	}
}
