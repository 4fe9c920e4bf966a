package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate against
// the local credential store.
//
// The authentication itself runs off this goroutine; Login blocks on the
// result channel. On success a session is created and persisted. On failure
// the service's user-facing message is printed; the specific failure kind is
// deliberately not surfaced to the user.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result := <-a.authService.Authenticate(ctx, userName, string(password))
	if !result.Succeeded() {
		printlnFn("Login failed:", result.Message())
		return nil
	}

	if _, err := a.sessions.Create(ctx, result.User()); err != nil {
		return err
	}
	printlnFn("Welcome,", result.User().Username)
	return nil
}

// Logout destroys the active session. Calling it while logged out is a no-op.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Destroy(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// AddUser creates a new account. Only administrators may call it.
func (a *App) AddUser(ctx context.Context) error {
	if !a.sessions.IsCurrentUserAdmin(ctx) {
		printlnFn("Only administrators can add users")
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Enter title (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	isAdmin, err := getSimpleText(a.reader, "Administrator? (y/N)", os.Stdout)
	if err != nil {
		return err
	}

	result := <-a.authService.CreateAccount(ctx, userName, string(password), title, isAdmin == "y")
	if !result.Succeeded() {
		printlnFn("Could not create account:", result.Message())
		return nil
	}
	printlnFn("Account created:", result.User().Username)
	return nil
}

// Users lists all accounts. Only administrators may call it.
func (a *App) Users(ctx context.Context) error {
	if !a.sessions.IsCurrentUserAdmin(ctx) {
		printlnFn("Only administrators can list users")
		return nil
	}

	list, err := a.userRepo.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, u := range list {
		role := "member"
		if u.IsAdmin {
			role = "administrator"
		}
		line := fmt.Sprintf("%d  %s (%s)", u.ID, u.Username, role)
		if u.Title != "" {
			line += "  " + u.Title
		}
		printlnFn(line)
	}
	return nil
}

// DeleteUser removes an account by id. Only administrators may call it, and
// an administrator cannot delete their own account while signed in on it.
func (a *App) DeleteUser(ctx context.Context, rawID string) error {
	if !a.sessions.IsCurrentUserAdmin(ctx) {
		printlnFn("Only administrators can delete users")
		return nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		printlnFn("Invalid user id:", rawID)
		return nil
	}
	if id == a.sessions.CurrentUserID(ctx) {
		printlnFn("You cannot delete the account you are signed in with")
		return nil
	}

	if err := a.userRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("No such user")
			return nil
		}
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("User deleted")
	return nil
}

// WhoAmI prints the active session's user, or a hint when there is none.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.sessions.IsLoggedIn(ctx) {
		printlnFn("Not logged in")
		return nil
	}
	role := "member"
	if a.sessions.IsCurrentUserAdmin(ctx) {
		role = "administrator"
	}
	printlnFn(fmt.Sprintf("%s (%s)", a.sessions.CurrentUsername(ctx), role))
	return nil
}

// SessionInfo prints the active session's expiry details.
func (a *App) SessionInfo(ctx context.Context) error {
	s := a.sessions.Current(ctx)
	if s == nil {
		printlnFn("No active session")
		return nil
	}
	printlnFn(fmt.Sprintf("Session for %s, expires %s (in %s)",
		s.Username,
		s.ExpiresAt.Local().Format(time.RFC822),
		a.sessions.TimeRemaining(ctx).Round(time.Minute)))
	return nil
}

// ExtendSession renews the active session for another full validity window.
func (a *App) ExtendSession(ctx context.Context) error {
	if !a.sessions.Extend(ctx) {
		printlnFn("No active session to extend")
		return nil
	}
	printlnFn("Session extended")
	return nil
}
