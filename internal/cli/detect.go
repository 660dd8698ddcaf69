package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/markdown"
)

const noPattern = "none"

func newDetectCommand() *cobra.Command {
	var flavor string

	cmd := &cobra.Command{
		Use:   "detect <text>",
		Short: "Report the block patterns a line of text implies",
		Long: `Report which block type the editor would derive from a line of text.

The inline pattern is an ATX heading marker ("## ") that retypes a block
while typing. The line-break pattern is a thematic break or an opening code
fence; it is reported while typing but does not retype the block.

Examples:
  mdlive detect '## Title'
  mdlive detect '---'
  mdlive detect '` + "```go" + `'`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := transformerConfig(cmd, flavor)
			if err != nil {
				return err
			}

			transformer := markdown.New(markdown.WithFlavor(string(cfg.Flavor)))
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))

			inline := noPattern
			if p, ok := transformer.DetectInlinePattern(args[0]); ok {
				inline = fmt.Sprintf("%s (level %d)", styles.Tag.Render(p.Tag), p.Level)
			}

			lineBreak := noPattern
			if p, ok := transformer.DetectLineBreakPattern(args[0]); ok {
				lineBreak = styles.Tag.Render(p.Tag)
				if p.Language != "" {
					lineBreak += " " + styles.Dim.Render("("+p.Language+")")
				}
			}

			_, err = fmt.Fprintf(out, "%s  %s\n%s  %s\n",
				styles.Bold.Render("inline    "), inline,
				styles.Bold.Render("line-break"), lineBreak)
			return err
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", "", "Markdown flavor: commonmark, gfm")

	return cmd
}
