// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"macdev-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `macdev config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage macdev configuration",
		Long: `Manage macdev configuration.

Configuration is stored in:
  - Linux: ~/.config/macdev/config.cue
  - macOS: ~/Library/Application Support/macdev/config.cue
  - Windows: %APPDATA%\macdev\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			cmd.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context) error {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgPath, pathErr := config.ConfigFilePath()
	switch {
	case cfgFile != "":
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgFile)
	case pathErr == nil && fileExistsCheck(cfgPath):
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	default:
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("build"))
	fmt.Printf("  command: %s\n", valueStyle.Render(cfg.Build.Command.String()))
	fmt.Printf("  args: %s\n", valueStyle.Render(renderArgs(cfg.Build.Args)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("test"))
	fmt.Printf("  runner: %s\n", valueStyle.Render(cfg.Test.Runner.String()))
	fmt.Printf("  develop_flag: %s\n", valueStyle.Render(cfg.Test.DevelopFlag))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("venv"))
	fmt.Printf("  dir: %s\n", valueStyle.Render(cfg.Venv.Dir.String()))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("version_manager"))
	fmt.Printf("  command: %s\n", valueStyle.Render(cfg.VersionManager.Command.String()))
	fmt.Printf("  args: %s\n", valueStyle.Render(renderArgs(cfg.VersionManager.Args)))
	fmt.Printf("  disabled: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.VersionManager.Disabled)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func renderArgs(args []string) string {
	if len(args) == 0 {
		return "(none)"
	}
	return strings.Join(args, " ")
}

func initConfig() error {
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgPath)
	return nil
}

func setConfigValue(ctx context.Context, key, value string) error {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{})
	if err != nil {
		return err
	}

	switch key {
	case "build.command":
		cfg.Build.Command = config.CommandPath(value)

	case "test.runner":
		cfg.Test.Runner = config.CommandPath(value)

	case "test.develop_flag":
		cfg.Test.DevelopFlag = value

	case "venv.dir":
		cfg.Venv.Dir = config.VenvDir(value)

	case "version_manager.command":
		cfg.VersionManager.Command = config.CommandPath(value)

	case "version_manager.disabled":
		cfg.VersionManager.Disabled = value == "true" || value == "1"

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: build.command, test.runner, test.develop_flag, venv.dir, version_manager.command, version_manager.disabled, ui.verbose", key)
	}

	if ok, errs := cfg.IsValid(); !ok {
		return fmt.Errorf("invalid value for %s: %w", key, errs[0])
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
