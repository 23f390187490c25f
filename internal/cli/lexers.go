package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wsdiff/wsdiff/pkg/highlight"
)

// lexersCommand creates the lexers listing command.
func (c *CLI) lexersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lexers",
		Short: "List available syntax highlighting lexers",
		Long: `List the lexers available for the --lexer flag, one per line with
their aliases. Any listed name or alias is accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range highlight.Lexers() {
				line := l.Name
				if len(l.Aliases) > 0 {
					line += "  " + StyleDim.Render("("+strings.Join(l.Aliases, ", ")+")")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
