package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/pipeline"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// StyleListModel is the bubbletea model for interactive style selection.
type StyleListModel struct {
	Families []*styles.Family
	Variants map[string][]string // distinct variant names per family
	Cursor   int
	Offset   int
	Height   int
	Selected *styles.Family
}

// NewStyleListModel creates a list over families.
func NewStyleListModel(families []*styles.Family) StyleListModel {
	m := StyleListModel{
		Families: families,
		Variants: make(map[string][]string, len(families)),
		Height:   12,
	}
	g, err := geom.NewGeometry(matrix.DefaultBoxSize, geom.DefaultRatio)
	if err != nil {
		return m
	}
	for _, f := range families {
		d := f.New(g)
		var names []string
		for _, s := range neighbor.All() {
			if v := styles.VariantOf(d, s); !slices.Contains(names, v) {
				names = append(names, v)
			}
		}
		m.Variants[f.Name] = names
	}
	return m
}

func (m StyleListModel) Init() tea.Cmd {
	return nil
}

func (m StyleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Families)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Families) > 0 {
				m.Selected = m.Families[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m StyleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Style"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Families))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		f := m.Families[i]
		rows = append(rows, []string{cursor, f.Name, fmt.Sprint(len(m.Variants[f.Name]))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Style", "Variants").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Cursor < len(m.Families) {
		f := m.Families[m.Cursor]
		b.WriteString("  " + StyleDim.Render(f.Description) + "\n")
		if vs := m.Variants[f.Name]; len(vs) > 1 {
			b.WriteString("  " + StyleDim.Render("variants: "+strings.Join(vs, ", ")) + "\n")
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Families))))
	return b.String()
}

func (c *CLI) pickCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "pick <text>",
		Short: "Choose a style interactively, then render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewStyleListModel(styles.All), tea.WithContext(cmd.Context()), tea.WithOutput(c.Err))
			final, err := p.Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "style picker")
			}
			selected := final.(StyleListModel).Selected
			if selected == nil {
				printInfo(c.Err, "No style selected")
				return nil
			}

			opts := pipeline.Options{Text: text}
			if ro.formats != "" {
				opts.Formats = pipeline.ParseFormats(ro.formats)
			}
			c.config.Render.apply(cmd, &opts)
			opts.Style = selected.Name
			return c.runRender(cmd.Context(), opts, ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", `output file, base path, or "-" for stdout`)
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
