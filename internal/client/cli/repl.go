package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL dispatches to. The real
// App type satisfies it; tests provide a lightweight stub. Handlers print
// their own output and return errors meant for the user.
type execIface interface {
	Verify(ctx context.Context, args []string) error
	Fetch(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Lock(ctx context.Context, args []string) error
	Types(ctx context.Context, args []string) error
	Templates(ctx context.Context, args []string) error
	Cache(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Sync(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  verify <id> [pin]     verify a document and save the result
  fetch <id>            look a document up without saving it
  history [limit]       list saved verifications
  show <record-id>      show a saved verification
  search <query>        search saved verifications
  stats                 history statistics
  export                write the history to a JSON file
  delete <record-id>    delete a saved verification
  clear                 delete the whole history
  lock [set|clear]      manage the history PIN
  types                 list document types
  templates             list verification templates
  cache [pending|clear] offline cache
  status                connection and cache status
  sync                  retry queued verifications
  exit | quit           leave the program`

// runREPL starts a simple read–eval–print loop for the verifier CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on a. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn).
func runREPL(ctx context.Context, a execIface, statusFn func() string, in lineSource, w io.Writer) {
	for {
		fmt.Fprintf(w, "dv %s> ", statusFn())
		line, err := in.ReadLine(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(w)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, helpText)
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "v", "verify":
			handler = a.Verify
		case "fetch":
			handler = a.Fetch
		case "h", "history":
			handler = a.History
		case "show":
			handler = a.Show
		case "search":
			handler = a.Search
		case "stats":
			handler = a.Stats
		case "export":
			handler = a.Export
		case "delete":
			handler = a.Delete
		case "clear":
			handler = a.Clear
		case "lock":
			handler = a.Lock
		case "types":
			handler = a.Types
		case "templates":
			handler = a.Templates
		case "cache":
			handler = a.Cache
		case "status":
			handler = a.Status
		case "sync":
			handler = a.Sync
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		if err := handler(ctx, args); err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
	}
}
