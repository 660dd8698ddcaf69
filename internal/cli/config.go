package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/configloader"
	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/fsutil"
)

// Default file names written by config --init.
const (
	projectConfigName = ".mdlive.yml"
	userConfigName    = "config.yaml"
	userConfigDirMode = 0o755
)

type configFlags struct {
	init   bool
	user   bool
	force  bool
	env    bool
	output string
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create mdlive configuration",
		Long: `Print the effective configuration after merging config files,
MDLIVE_* environment variables and flags.

Examples:
  mdlive config                  Print the effective configuration
  mdlive config --env            List supported environment variables
  mdlive config --init           Create .mdlive.yml in the current directory
  mdlive config --init --user    Create the user-level config file`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case flags.init:
				return runConfigInit(cmd, flags)
			case flags.env:
				return runConfigEnv(cmd)
			default:
				return runConfigShow(cmd)
			}
		},
	}

	cmd.Flags().BoolVar(&flags.init, "init", false, "write a configuration file holding the defaults")
	cmd.Flags().BoolVar(&flags.user, "user", false, "with --init, write the user-level config file")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "with --init, overwrite an existing file")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "with --init, write to this path")
	cmd.MarkFlagsMutuallyExclusive("init", "env")

	return cmd
}

// loadConfig resolves the configuration for a command. cliCfg carries the
// values set by command flags and may be nil.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = config.ColorMode(color)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(result.Config.LogLevel)
	}

	logger := logging.Default()
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	logger.Debug("configuration loaded",
		logging.FieldConfig, result.LoadedFrom,
		logging.FieldFlavor, result.Config.Flavor)

	return result, nil
}

func runConfigShow(cmd *cobra.Command) error {
	result, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	header := "# effective configuration (defaults only)"
	if len(result.LoadedFrom) > 0 {
		header = "# effective configuration\n# loaded from: " + strings.Join(result.LoadedFrom, ", ")
	}
	content, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(content)
	return err
}

func runConfigEnv(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}
	for _, v := range vars {
		if _, err := fmt.Fprintf(out, "%s  %s\n", rpad(v.Name, width), v.Description); err != nil {
			return err
		}
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, flags *configFlags) error {
	logger := logging.NewInteractive()

	outputPath, err := initPath(flags)
	if err != nil {
		return err
	}

	if _, err := os.Stat(outputPath); err == nil && !flags.force {
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
	}
	if flags.user {
		if err := os.MkdirAll(filepath.Dir(outputPath), userConfigDirMode); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	content, err := config.GenerateTemplate()
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(cmd.Context(), outputPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}

func initPath(flags *configFlags) (string, error) {
	switch {
	case flags.output != "":
		return filepath.Abs(flags.output)
	case flags.user:
		dir, err := configloader.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, userConfigName), nil
	default:
		return filepath.Abs(projectConfigName)
	}
}
