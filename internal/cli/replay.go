package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/fsutil"
	"github.com/yaklabco/mdlive/pkg/replay"
	"github.com/yaklabco/mdlive/pkg/reporter"
	"github.com/yaklabco/mdlive/pkg/runner"
)

type replayFlags struct {
	format  string
	flavor  string
	output  string
	exclude []string
	jobs    int
	backup  bool
}

func newReplayCommand() *cobra.Command {
	flags := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay [paths...]",
		Short: "Drive the editor with replay scripts",
		Long:  replayLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", reporter.FormatText.String(),
		"output format: "+reporter.FormatNames())
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write the resulting document of a single script to this file (html with --format html)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "back up an existing output file before overwriting it")

	return cmd
}

const replayLongDescription = `Play replay scripts against a fresh editor each and check their expectations.

A replay script is a YAML file listing device actions (typing, Enter,
Backspace, clicks, selections, arrow keys) and, optionally, the expected
markdown, HTML, active block and block tags afterwards. By default all
.yaml and .yml files below the current directory are played.

Examples:
  mdlive replay                              Play every script below .
  mdlive replay scripts/heading.yaml         Play one script
  mdlive replay --format blocks scripts/     Dump the blocks of each script
  mdlive replay --format diff scripts/       Diff expected and actual documents
  mdlive replay -o out.md scripts/doc.yaml   Save the resulting markdown`

func runReplay(cmd *cobra.Command, args []string, flags *replayFlags) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	cliCfg := &config.Config{}
	if flags.flavor != "" {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	logger := logging.Default()
	ctx := logging.WithLogger(cmd.Context(), logger)
	player := replay.NewPlayer(replay.WithConfig(cfg))

	logger.Debug("starting replay run",
		logging.FieldPath, args,
		logging.FieldOutput, flags.output)

	result, err := runner.New(player).Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: flags.exclude,
		Jobs:         flags.jobs,
	})
	if err != nil {
		return fmt.Errorf("replay run: %w", err)
	}

	out := cmd.OutOrStdout()
	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		Format:      format,
		Color:       string(cfg.Color),
		TermWidth:   terminalWidth(out),
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.output != "" {
		if err := writeDocument(ctx, result, flags.output, format, flags.backup); err != nil {
			return err
		}
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrReplayFailed
	}
	return nil
}

// writeDocument saves the document of the only script of the run.
func writeDocument(ctx context.Context, result *runner.Result, output string, format reporter.Format, backup bool) error {
	if len(result.Scripts) != 1 {
		return fmt.Errorf("%w: --output needs exactly one script, got %d", ErrInvalidUsage, len(result.Scripts))
	}
	played := result.Scripts[0].Result
	if played == nil {
		return fmt.Errorf("%w: %s produced no document", ErrReplayFailed, result.Scripts[0].Path)
	}

	content := played.Markdown
	if format == reporter.FormatHTML {
		content = played.HTML
	}
	content += "\n"

	logger := logging.FromContext(ctx)
	if backup {
		created, err := fsutil.CreateBackup(ctx, output)
		if err != nil {
			return fmt.Errorf("backup %s: %w", output, err)
		}
		if created {
			logger.Info("backup created", logging.FieldPath, fsutil.BackupPath(output))
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, output, []byte(content), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	if written {
		logger.Info("document written", logging.FieldPath, output)
	} else {
		logger.Debug("document unchanged", logging.FieldPath, output)
	}
	return nil
}

// terminalWidth returns the column count of out when it is a terminal and
// 0 otherwise.
func terminalWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok {
		return 0
	}
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
