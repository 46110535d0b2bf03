package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/signbook/internal/common"
)

const helpText = `Available commands:
  list                  list all users
  show <id>             show one user and its signature details
  add                   add a user
  update <id>           replace a user's name, address and signature
  delete <id>           delete a user
  export <id> [path]    write a user's signature to a file
  help                  show this help
  exit | quit           leave the program`

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF, on exit/quit or when ctx is cancelled. Command errors
// are printed to out and the loop carries on.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, prompts, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(prompts, common.AppName+"> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(prompts)
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
			fmt.Fprintln(out, helpText)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx)
		case "update":
			cmdErr = a.Update(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "export":
			cmdErr = a.Export(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(prompts, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", userMessage(cmdErr))
		}
	}
}
