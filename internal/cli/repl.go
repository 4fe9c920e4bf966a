package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs. printFn leaves the cursor on the prompt line.
var printlnFn = fmt.Println
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddUser(ctx context.Context) error
	Users(ctx context.Context) error
	DeleteUser(ctx context.Context, rawID string) error
	WhoAmI(ctx context.Context) error
	SessionInfo(ctx context.Context) error
	ExtendSession(ctx context.Context) error
	listTasks(ctx context.Context, status string) error
	addTask(ctx context.Context) error
	editTask(ctx context.Context, id string) error
	showTask(ctx context.Context, id string) error
	setTaskStatus(ctx context.Context, id, status string) error
	deleteTask(ctx context.Context, id string) error
	addComment(ctx context.Context, id string) error
	searchTasks(ctx context.Context, query string) error
}

// runREPL starts a simple read–eval–print loop for the task tracker CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - list [status]      — list tasks, optionally filtered by status
//	  - add                — create a task
//	  - edit <id>          — change a task's title or description
//	  - show <id>          — show a task with its comments
//	  - start <id>         — move a task to in_progress
//	  - done <id>          — move a task to done
//	  - delete <id>        — delete a task and its comments
//	  - comment <id>       — add a comment to a task
//	  - search <text>      — search tasks by title or description
//	  - whoami             — show the signed-in user
//	  - session            — show session expiry
//	  - extend             — renew the session window
//	  - adduser            — create an account (administrators)
//	  - users              — list accounts (administrators)
//	  - deluser <id>       — delete an account (administrators)
//	  - logout             — log out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printFn(fmt.Sprintf("tt %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: list [status], add, edit <id>, show <id>, start <id>, done <id>, delete <id>, comment <id>, search <text>, whoami, session, extend, adduser, users, deluser <id>, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "session":
			_ = a.SessionInfo(ctx)

		case "extend":
			_ = a.ExtendSession(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "users":
			_ = a.Users(ctx)

		case "deluser":
			if len(args) == 0 {
				printlnFn("Usage: deluser <id>")
				continue
			}
			_ = a.DeleteUser(ctx, args[0])

		case "l", "list":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			_ = a.listTasks(ctx, status)

		case "add":
			_ = a.addTask(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.editTask(ctx, args[0])

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.showTask(ctx, args[0])

		case "start":
			if len(args) == 0 {
				printlnFn("Usage: start <id>")
				continue
			}
			_ = a.setTaskStatus(ctx, args[0], "in_progress")

		case "done":
			if len(args) == 0 {
				printlnFn("Usage: done <id>")
				continue
			}
			_ = a.setTaskStatus(ctx, args[0], "done")

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.deleteTask(ctx, args[0])

		case "comment":
			if len(args) == 0 {
				printlnFn("Usage: comment <id>")
				continue
			}
			_ = a.addComment(ctx, args[0])

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <text>")
				continue
			}
			_ = a.searchTasks(ctx, strings.Join(args, " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
