package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit           Action = "quit"
	ActionFocusNext      Action = "focus_next"
	ActionFocusPrev      Action = "focus_prev"
	ActionRefresh        Action = "refresh"
	ActionToggleWeighted Action = "toggle_weighted"
	ActionHelp           Action = "help"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Sort pane
	ActionPromoteSort Action = "promote_sort" // enter
	ActionReverseSort Action = "reverse_sort" // s

	// Filter pane
	ActionToggleArtist Action = "toggle_artist" // enter/space
	ActionIncludeAll   Action = "include_all"   // a
)
