package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	ctx := context.Background()
	name := a.sessions.CurrentUsername(ctx)
	if name == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", name)
}

// Root runs the interactive loop until the user exits. A session persisted
// by an earlier run is picked up automatically; otherwise the user is asked
// to log in first.
func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to the task tracker CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if a.isLoggedIn() {
		printlnFn("Resuming session for", a.sessions.CurrentUsername(ctx))
	} else {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, scanner)
}
