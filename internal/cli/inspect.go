package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/diagram"
)

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <diagram>",
		Short: "Browse a positioned diagram interactively",
		Long: `Inspect opens a diagram document in an interactive browser: pick a
lane, then an element, and laneflow prints the element's computed
geometry. Useful for checking what layout decided without rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runInspect(ctx context.Context, path string) error {
	d, err := diagram.ReadDiagramFile(path)
	if err != nil {
		return fmt.Errorf("load diagram: %w", err)
	}
	if len(d.Lanes) == 0 {
		return fmt.Errorf("%s has no lanes to inspect", path)
	}

	laneProg := tea.NewProgram(NewLaneListModel(&d), tea.WithContext(ctx))
	laneFinal, err := laneProg.Run()
	if err != nil {
		return fmt.Errorf("lane picker: %w", err)
	}
	lanes, ok := laneFinal.(LaneListModel)
	if !ok || lanes.Selected == nil {
		return nil
	}

	elemProg := tea.NewProgram(NewElementListModel(&d, lanes.Selected), tea.WithContext(ctx))
	elemFinal, err := elemProg.Run()
	if err != nil {
		return fmt.Errorf("element picker: %w", err)
	}
	elements, ok := elemFinal.(ElementListModel)
	if !ok || elements.Selected == nil {
		return nil
	}

	el := elements.Selected
	printSuccess(StyleHighlight.Render(elementLabel(*el)))
	printKeyValue("ID", el.ID)
	printKeyValue("Node", el.NodeID)
	printKeyValue("Shape", el.Shape)
	printKeyValue("Lane", lanes.Selected.Actor)
	printKeyValue("Position", fmt.Sprintf("(%.1f, %.1f)", el.X, el.Y))
	printKeyValue("Size", fmt.Sprintf("%.1f × %.1f", el.Width, el.Height))
	if el.Icon != "" {
		printKeyValue("Icon", el.Icon)
	}
	return nil
}
