package cli

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/markdown"
)

type renderFlags struct {
	flavor      string
	caret       int
	end         int
	showContext bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <text>",
		Short: "Render block text into inline markup",
		Long: `Render one block of text the way the editor does while typing.

Markers stay in the output wrapped in marker spans; markers of runs the
caret does not touch carry the hidden class. Offsets count characters.

Examples:
  mdlive render 'some **bold** text'               Caret at the end
  mdlive render 'some **bold** text' --caret 7     Caret inside the bold run
  mdlive render 'a *b* c' --caret 2 --end 5        Selection over the run`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.caret, "caret", -1, "caret offset (default: end of text)")
	cmd.Flags().IntVar(&flags.end, "end", -1, "selection end offset (default: caret)")
	cmd.Flags().BoolVar(&flags.showContext, "context", false, "print the text with the selection marked")

	return cmd
}

func runRender(cmd *cobra.Command, text string, flags *renderFlags) error {
	cfg, err := transformerConfig(cmd, flags.flavor)
	if err != nil {
		return err
	}

	sel, err := selectionFromFlags(text, flags.caret, flags.end)
	if err != nil {
		return err
	}

	transformer := markdown.New(
		markdown.WithFlavor(string(cfg.Flavor)),
		markdown.WithMarkerClasses(cfg.MarkerClass, cfg.HiddenMarkerClass),
	)

	out := cmd.OutOrStdout()
	if flags.showContext {
		styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
		if _, err := io.WriteString(out, styles.FormatCaretContext(text, sel)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(out, transformer.RenderInlineMarkup(text, sel))
	return err
}

// transformerConfig loads the configuration with the --flavor override.
func transformerConfig(cmd *cobra.Command, flavor string) (*config.Config, error) {
	cliCfg := &config.Config{}
	if flavor != "" {
		cliCfg.Flavor = config.Flavor(flavor)
	}
	result, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// selectionFromFlags turns --caret and --end into a selection. Negative
// values select the defaults; offsets past the text are rejected.
func selectionFromFlags(text string, caret, end int) (codec.State, error) {
	length := utf8.RuneCountInString(text)
	if caret < 0 {
		caret = length
	}
	if end < 0 {
		end = caret
	}
	if caret > length || end > length {
		return codec.State{}, fmt.Errorf("%w: offset out of range 0..%d", ErrInvalidUsage, length)
	}
	if end < caret {
		return codec.State{}, fmt.Errorf("%w: selection end %d before caret %d", ErrInvalidUsage, end, caret)
	}
	return codec.State{Start: caret, End: end}, nil
}
