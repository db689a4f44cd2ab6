// Package actions models the configurable hotkey actions and the rules that
// decide whether one may run in the current context.
package actions

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/atomicstack/pkgsorter/internal/catalog"
)

// Placeholder is replaced by the selected package name in command templates.
const Placeholder = "{package}"

// Names of the built-in local actions.
const (
	AddTag    = "Add Tag"
	RemoveTag = "Remove Tag"
)

// Hotkey is a character plus shift flag.
type Hotkey struct {
	Key   rune
	Shift bool
}

// HotkeyFromRune derives the shift flag from letter case, since terminals
// report shifted letters as upper-case runes without a modifier.
func HotkeyFromRune(r rune) Hotkey {
	return Hotkey{Key: r, Shift: unicode.IsUpper(r)}
}

// Matches reports whether a typed rune fires h.
func (h Hotkey) Matches(r rune) bool {
	if h.Key == 0 {
		return false
	}
	if h.Shift {
		return r == unicode.ToUpper(h.Key)
	}
	return r == h.Key
}

func (h Hotkey) String() string {
	if h.Key == 0 {
		return ""
	}
	if h.Shift {
		return "shift+" + string(unicode.ToLower(h.Key))
	}
	return string(h.Key)
}

// Kind distinguishes external commands from in-app actions.
type Kind int

const (
	KindCommand Kind = iota
	KindLocal
)

// Action is immutable for the lifetime of a session.
type Action struct {
	Name            string
	Key             Hotkey
	Kind            Kind
	Command         []string
	RequiresPackage bool
	Whitelist       []string
	Blacklist       []string
}

// Local constructs an in-app action.
func Local(name string, key rune) Action {
	return Action{Name: name, Key: HotkeyFromRune(key), Kind: KindLocal}
}

// WithLocal appends the always-present tag actions to configured.
func WithLocal(configured []Action) []Action {
	out := make([]Action, 0, len(configured)+2)
	out = append(out, configured...)
	out = append(out, Local(AddTag, 'a'), Local(RemoveTag, 'd'))
	return out
}

// FindHotkey returns the first command action bound to r. Local actions are
// only reachable from the action modal.
func FindHotkey(actions []Action, r rune) (Action, bool) {
	for _, a := range actions {
		if a.Kind == KindCommand && a.Key.Matches(r) {
			return a, true
		}
	}
	return Action{}, false
}

// Context is the engine state an invocation is checked against.
type Context struct {
	ShowMode catalog.ShowMode
	Package  string
}

// Rejection reasons.
var (
	ErrModeNotAllowed = errors.New("not available in this show mode")
	ErrModeBlocked    = errors.New("disabled in this show mode")
	ErrNoPackage      = errors.New("no package selected")
)

// RejectError carries a user-facing message for a refused invocation and
// unwraps to one of the rejection reasons above.
type RejectError struct {
	Reason  error
	Message string
}

func (e *RejectError) Error() string { return e.Message }

func (e *RejectError) Unwrap() error { return e.Reason }

func reject(reason error, format string, args ...any) error {
	return &RejectError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Status is the result class of Dispatch.
type Status int

const (
	Rejected Status = iota
	Resolved
)

// Severity mirrors the message log levels an outcome should be reported at.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Outcome is the result of Dispatch.
type Outcome struct {
	Status   Status
	Command  []string
	Message  string
	Severity Severity
	Err      error
}

// Dispatch applies the invocation rules to a command action: whitelist,
// blacklist, package requirement, then placeholder substitution.
func Dispatch(a Action, ctx Context) Outcome {
	argv, err := Resolve(a, ctx)
	if err != nil {
		sev := SeverityWarning
		if errors.Is(err, ErrNoPackage) {
			sev = SeverityError
		}
		return Outcome{Status: Rejected, Message: err.Error(), Severity: sev, Err: err}
	}
	return Outcome{
		Status:   Resolved,
		Command:  argv,
		Message:  fmt.Sprintf("Running: %s", strings.Join(argv, " ")),
		Severity: SeverityInfo,
	}
}

// Resolve returns the command to run or the reason it may not.
func Resolve(a Action, ctx Context) ([]string, error) {
	if a.Kind != KindCommand {
		return nil, fmt.Errorf("%q is not a command action", a.Name)
	}
	if len(a.Whitelist) > 0 && !modeListed(a.Whitelist, ctx.ShowMode) {
		return nil, reject(ErrModeNotAllowed, "'%s' is only available in: %s", a.Name, strings.Join(a.Whitelist, ", "))
	}
	if modeListed(a.Blacklist, ctx.ShowMode) {
		return nil, reject(ErrModeBlocked, "'%s' is disabled in %s", a.Name, ctx.ShowMode)
	}
	if a.RequiresPackage && ctx.Package == "" {
		return nil, reject(ErrNoPackage, "'%s' needs a selected package", a.Name)
	}
	return Template(a.Command, ctx.Package), nil
}

// Template substitutes pkg for every argument equal to Placeholder. An
// empty pkg leaves the placeholder literal.
func Template(command []string, pkg string) []string {
	out := make([]string, len(command))
	for i, part := range command {
		if part == Placeholder && pkg != "" {
			out[i] = pkg
			continue
		}
		out[i] = part
	}
	return out
}

func modeListed(list []string, mode catalog.ShowMode) bool {
	for _, name := range list {
		if mode.Matches(name) {
			return true
		}
	}
	return false
}
