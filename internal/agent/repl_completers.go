package agent

import (
	"github.com/chzyer/readline"
)

// createCompleter builds the tab completion tree for the REPL. Tool names
// are completed dynamically from the client cache so a list_changed
// notification picks up new tools without restarting the session.
func (r *REPL) createCompleter() readline.AutoCompleter {
	toolNames := func(string) []string {
		tools := r.client.GetToolCache()
		names := make([]string, 0, len(tools))
		for _, tool := range tools {
			names = append(names, tool.Name)
		}
		return names
	}

	featureIDs := func(string) []string {
		// Feature IDs are not cached locally; completion falls back to
		// free-form input.
		return nil
	}

	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help", r.commandNameItems()...),
		readline.PcItem("list",
			readline.PcItem("features"),
			readline.PcItem("groups"),
			readline.PcItem("tools"),
		),
		readline.PcItem("get", readline.PcItemDynamic(featureIDs)),
		readline.PcItem("describe", readline.PcItemDynamic(toolNames)),
		readline.PcItem("resolve"),
		readline.PcItem("reconcile"),
		readline.PcItem("serialize"),
		readline.PcItem("status"),
		readline.PcItem("rule",
			readline.PcItem("set"),
			readline.PcItem("clear"),
		),
		readline.PcItem("groups",
			readline.PcItem("set"),
			readline.PcItem("clear"),
		),
		readline.PcItem("events"),
		readline.PcItem("call", readline.PcItemDynamic(toolNames)),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	}

	return readline.NewPrefixCompleter(items...)
}

// commandNameItems returns completer items for every registered command so
// "help <TAB>" offers the full command set.
func (r *REPL) commandNameItems() []readline.PrefixCompleterInterface {
	names := r.commandRegistry.List()
	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		items = append(items, readline.PcItem(name))
	}
	return items
}

// filterInput blocks control characters that would corrupt the readline
// session.
func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
