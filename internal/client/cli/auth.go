package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tpforum/internal/client/authflow"
	"github.com/dmitrijs2005/tpforum/internal/client/models"
	"github.com/dmitrijs2005/tpforum/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	cmdSwitch = ":switch"
	cmdCancel = ":cancel"
)

// errCancelled is returned when the user leaves the dialog with :cancel.
var errCancelled = errors.New("cancelled")

// Login opens the auth dialog in login mode.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, models.ModeLogin)
}

// Register opens the auth dialog in registration mode.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, models.ModeRegister)
}

// Logout forgets the local session. The server is not contacted.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}
	if err := a.shell.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}

// authenticate runs the dialog until a submission succeeds, the user types
// :cancel, input ends, or the dialog is closed from elsewhere. Failed
// submissions keep the dialog open with the entered values.
func (a *App) authenticate(ctx context.Context, mode models.Mode) error {
	if st := a.shell.State(); st.User != nil {
		printlnFn(fmt.Sprintf("Already logged in as %s, logout first", st.User.Username))
		return nil
	}

	a.dialog.Open(mode, a.shell.HandleAuthSuccess)
	defer a.dialog.Close()

	printlnFn(fmt.Sprintf("Type %s to toggle login/register, %s to leave. Empty input keeps the current value.", cmdSwitch, cmdCancel))

	for a.dialog.IsOpen() {
		err := a.fillForm()
		if errors.Is(err, errCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		err = a.dialog.Submit(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, authflow.ErrStale), errors.Is(err, authflow.ErrClosed):
			return err
		}
	}
	return authflow.ErrClosed
}

// fillForm prompts for every field of the current mode. :switch toggles the
// mode and starts over.
func (a *App) fillForm() error {
	for {
		mode := a.dialog.Mode()
		form := a.dialog.Form()
		printlnFn(fmt.Sprintf("== %s ==", mode.Title()))

		err := a.promptText("Username", form.Username, a.dialog.SetUsername)
		if err == nil && mode == models.ModeRegister {
			err = a.promptText("Email", form.Email, a.dialog.SetEmail)
		}
		if err == nil {
			err = a.promptPassword()
		}

		if errors.Is(err, errSwitch) {
			if err := a.dialog.ToggleMode(); err != nil {
				return err
			}
			continue
		}
		return err
	}
}

var errSwitch = errors.New("switch mode")

func (a *App) promptText(label, current string, set func(string) error) error {
	v, err := getSimpleText(a.reader, label, current, a.out)
	if err != nil {
		return err
	}
	switch v {
	case cmdSwitch:
		return errSwitch
	case cmdCancel:
		return errCancelled
	case "":
		return nil
	}
	return set(v)
}

func (a *App) promptPassword() error {
	pw, err := getPassword(a.out, "Password", a.dialog.Form().Password != "")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	switch string(pw) {
	case cmdSwitch:
		return errSwitch
	case cmdCancel:
		return errCancelled
	case "":
		return nil
	}
	return a.dialog.SetPassword(string(pw))
}
