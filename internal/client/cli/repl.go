package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/roster/internal/client/router"
	"github.com/dmitrijs2005/roster/internal/client/services"
	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/sheet"
)

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	Navigate(ctx context.Context, token string) error
	Where() string
	List(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	DeleteAll(ctx context.Context) error
	Import(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Print(ctx context.Context, args []string) error
	Check(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  list [query] [-reg] [-sort recent|alphabetical]   show records
  add                                              add a record
  show <id> | edit <id>                            open a record
  delete <id> | deleteall                          remove records
  import <file.xlsx> | export [file.xlsx]          spreadsheets
  print [reg]                                      printable pages
  check <first> [last]                             look for similar names
  settings | go <token> | where                    navigation
  exit                                             leave the program`

// runREPL reads one command per line from in and dispatches it to a. The loop
// exits on EOF, "exit"/"quit" or when ctx is done. Command errors are
// reported to w and never stop the loop. The prompt is only printed when
// prompt is true.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, w io.Writer, prompt bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			fmt.Fprintf(w, "roster %s> ", statusFn())
		}

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "add":
			cmdErr = a.Navigate(ctx, string(router.ViewAdd))

		case "show", "edit":
			if len(args) == 0 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			v := router.ViewDetail
			if cmd == "edit" {
				v = router.ViewEdit
			}
			cmdErr = a.Navigate(ctx, router.Route{View: v, ID: args[0]}.String())

		case "settings":
			cmdErr = a.Navigate(ctx, string(router.ViewSettings))

		case "go":
			token := ""
			if len(args) > 0 {
				token = args[0]
			}
			cmdErr = a.Navigate(ctx, token)

		case "where":
			fmt.Fprintln(w, a.Where())

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "deleteall":
			cmdErr = a.DeleteAll(ctx)

		case "import":
			cmdErr = a.Import(ctx, args)

		case "export":
			cmdErr = a.Export(ctx, args)

		case "print":
			cmdErr = a.Print(ctx, args)

		case "check":
			cmdErr = a.Check(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, userMessage(cmdErr))
		}
	}
}

// userMessage turns an error into the line shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return "Error: record not found"
	case errors.Is(err, sheet.ErrNothingToExport):
		return "Nothing to export: the roster is empty"
	case services.IsPersistence(err):
		return "Storage error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
