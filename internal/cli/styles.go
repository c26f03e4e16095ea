package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsvg/pkg/pipeline"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

var headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// headerRow is the row index StyleFunc receives for table headers.
const headerRow = -1

func (c *CLI) stylesCommand() *cobra.Command {
	var variants string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List shape families",
		Long: `List every shape family. With --variants, show which variant a family
draws for each of the 16 neighbor combinations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if variants != "" {
				return printVariants(c.Out, variants)
			}
			printFamilies(c.Out)
			return nil
		},
	}
	cmd.Flags().StringVar(&variants, "variants", "", "show the neighbor variants of one family")
	_ = cmd.RegisterFlagCompletionFunc("variants", completeStyles)
	return cmd
}

func printFamilies(w io.Writer) {
	rows := make([][]string, len(styles.All))
	for i, f := range styles.All {
		rows[i] = []string{f.Name, yesNo(f.Neighbors), yesNo(f.Random), f.Description}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Style", "Neighbors", "Random", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d styles; default %s", len(styles.All), pipeline.DefaultStyle)))
}

func printVariants(w io.Writer, name string) error {
	f, err := styles.Lookup(name)
	if err != nil {
		return err
	}
	g, err := geom.NewGeometry(matrix.DefaultBoxSize, geom.DefaultRatio)
	if err != nil {
		return err
	}
	d := f.New(g)

	sets := neighbor.All()
	rows := make([][]string, len(sets))
	for i, s := range sets {
		rows[i] = []string{s.String(), fmt.Sprint(s.Count()), styles.VariantOf(d, s), styles.RuleOf(d, s)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Neighbors", "Count", "Variant", "Rule").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			if col == 2 {
				return StyleValue
			}
			return StyleDim
		})

	fmt.Fprintln(w, StyleTitle.Render(f.Name))
	fmt.Fprintln(w, t.Render())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

func completeStyles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return styles.Names(), cobra.ShellCompDirectiveNoFileComp
}
