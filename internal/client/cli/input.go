package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword stands in for term.ReadPassword so tests never touch a tty.
var readPassword = term.ReadPassword

// passwordKept is shown instead of a stored password; the value itself is
// never echoed.
const passwordKept = "set, Enter keeps it"

// GetSimpleText asks for one form field. When current is non-empty it is
// shown in brackets and an empty answer means "keep it":
//
//	Username [alice]
//	> _
//
// A final line without a newline is still returned.
func GetSimpleText(reader *bufio.Reader, label, current string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, fieldPrompt(label, current)+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password without echo. With hasCurrent set the prompt
// tells the user that an empty answer keeps the password already entered.
//
// The caller owns the returned slice and should wipe it.
func GetPassword(w io.Writer, label string, hasCurrent bool) ([]byte, error) {
	current := ""
	if hasCurrent {
		current = passwordKept
	}
	if _, err := fmt.Fprint(w, fieldPrompt(label, current)+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func fieldPrompt(label, current string) string {
	if current == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, current)
}
