// Package keymap defines key bindings and action dispatch for the viewer.
package keymap

// Contexts a binding can belong to. Global bindings apply in every pane.
const (
	ContextGlobal = "global"
	ContextTable  = "table"
	ContextSort   = "sort"
	ContextGroup  = "group"
	ContextFilter = "filter"
)

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains every key binding of the viewer.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "esc", "ctrl+c"}, "quit", ContextGlobal},
	{ActionFocusNext, []string{"tab"}, "next pane", ContextGlobal},
	{ActionFocusPrev, []string{"shift+tab"}, "previous pane", ContextGlobal},
	{ActionRefresh, []string{"r"}, "refresh", ContextGlobal},
	{ActionToggleWeighted, []string{"w"}, "weighted share", ContextGlobal},
	{ActionHelp, []string{"?"}, "help", ContextGlobal},

	// Table
	{ActionMoveUp, []string{"up", "k"}, "up", ContextTable},
	{ActionMoveDown, []string{"down", "j"}, "down", ContextTable},
	{ActionJumpStart, []string{"pgup", "home", "g"}, "first row", ContextTable},
	{ActionJumpEnd, []string{"pgdown", "end", "G"}, "last row", ContextTable},

	// Sort
	{ActionMoveUp, []string{"up", "k"}, "up", ContextSort},
	{ActionMoveDown, []string{"down", "j"}, "down", ContextSort},
	{ActionPromoteSort, []string{"enter"}, "make primary", ContextSort},
	{ActionReverseSort, []string{"s"}, "reverse", ContextSort},

	// Group
	{ActionMoveUp, []string{"up", "k"}, "previous grouping", ContextGroup},
	{ActionMoveDown, []string{"down", "j"}, "next grouping", ContextGroup},

	// Filter
	{ActionMoveUp, []string{"up", "k"}, "up", ContextFilter},
	{ActionMoveDown, []string{"down", "j"}, "down", ContextFilter},
	{ActionJumpStart, []string{"pgup", "home", "g"}, "first artist", ContextFilter},
	{ActionJumpEnd, []string{"pgdown", "end", "G"}, "last artist", ContextFilter},
	{ActionToggleArtist, []string{"enter", " "}, "toggle artist", ContextFilter},
	{ActionIncludeAll, []string{"a"}, "include all", ContextFilter},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
