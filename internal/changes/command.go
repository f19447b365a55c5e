// internal/changes/command.go
//
// The closed set of change-tracking commands this tool understands. The set
// mirrors the LaTeX "changes" package: \added, \deleted, \replaced,
// \highlight and \comment. Each command knows how many brace arguments it
// takes and how to render itself once the change is accepted or rejected.

package changes

// Command describes one change-tracking command. Values are defined once at
// package init and shared read-only; the engine never mutates them.
type Command struct {
	// Name is the literal token after the backslash, e.g. "added".
	Name string

	// NumArgs is the fixed number of brace-delimited arguments.
	NumArgs int

	// Accept renders the command with the change applied.
	Accept func(args []string) string

	// Reject renders the command with the change discarded.
	Reject func(args []string) string
}

// Registry is the full command set in scan order.
var Registry = []Command{
	{
		Name:    "added",
		NumArgs: 1,
		Accept:  func(args []string) string { return args[0] },
		Reject:  func(args []string) string { return "" },
	},
	{
		Name:    "deleted",
		NumArgs: 1,
		Accept:  func(args []string) string { return "" },
		Reject:  func(args []string) string { return args[0] },
	},
	{
		Name:    "replaced",
		NumArgs: 2,
		Accept:  func(args []string) string { return args[0] },
		Reject:  func(args []string) string { return args[1] },
	},
	{
		Name:    "highlight",
		NumArgs: 1,
		Accept:  func(args []string) string { return args[0] },
		Reject:  func(args []string) string { return args[0] },
	},
	{
		Name:    "comment",
		NumArgs: 1,
		Accept:  func(args []string) string { return "" },
		Reject:  func(args []string) string { return "" },
	},
}

var byName = func() map[string]Command {
	m := make(map[string]Command, len(Registry))
	for _, cmd := range Registry {
		m[cmd.Name] = cmd
	}
	return m
}()

// Lookup returns the command descriptor for name.
func Lookup(name string) (Command, bool) {
	cmd, ok := byName[name]
	return cmd, ok
}

// Names returns the registered command names in scan order.
func Names() []string {
	names := make([]string, len(Registry))
	for i, cmd := range Registry {
		names[i] = cmd.Name
	}
	return names
}
