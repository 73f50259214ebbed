package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mpressed/internal/stats"
	"github.com/llehouerou/mpressed/internal/ui/layout"
	"github.com/llehouerou/mpressed/internal/ui/statsview"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.helpView.SetSize(msg.Width, msg.Height)
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.handleHelpKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// relayout recomputes region sizes. The chart only exists for the Date
// grouping, so regrouping also calls this.
func (m *Model) relayout() {
	m.layout = layout.Compute(m.width, m.height, m.view.Group() == stats.ByDate)
	m.view.SetViewport(statsview.TableViewport(m.layout.TableHeight))
}

// filterListHeight is the number of artists the filter panel shows.
func (m *Model) filterListHeight() int {
	return max(m.layout.FilterHeight-3, 1)
}
