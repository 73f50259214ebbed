package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Help adapts the bindings of one pane to help.KeyMap.
type Help struct {
	context string
}

// HelpFor returns the help key map for a pane context.
func HelpFor(context string) Help {
	return Help{context: context}
}

// ShortHelp lists the pane's bindings followed by the global ones.
func (h Help) ShortHelp() []key.Binding {
	out := toKeyBindings(ByContext(h.context))
	for _, b := range toKeyBindings(ByContext(ContextGlobal)) {
		// tab and shift+tab share one entry in the short form
		if b.Help().Desc == "previous pane" {
			continue
		}
		out = append(out, b)
	}
	return out
}

// FullHelp groups every binding by context, the focused pane first.
func (h Help) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{toKeyBindings(ByContext(h.context))}
	for _, ctx := range []string{ContextTable, ContextSort, ContextGroup, ContextFilter} {
		if ctx != h.context {
			groups = append(groups, toKeyBindings(ByContext(ctx)))
		}
	}
	return append(groups, toKeyBindings(ByContext(ContextGlobal)))
}

func toKeyBindings(bindings []Binding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(helpKeys(b.Keys), b.Description),
		))
	}
	return out
}

// helpKeys renders a key list the way the footer shows it.
func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		switch k {
		case " ":
			names[i] = "space"
		case "up":
			names[i] = "↑"
		case "down":
			names[i] = "↓"
		default:
			names[i] = k
		}
	}
	return strings.Join(names, "/")
}
