// Package gate guards paste synthesis behind the OS accessibility permission.
//
// Paste is two-phase. The permission check runs synchronously in the caller's
// task. The keystroke, or the permission prompt when access is missing, is
// posted to the run loop and runs only after the caller's task returns, which
// lets a menu that triggered the paste close first.
package gate

import (
	"log/slog"
	"sync/atomic"

	"github.com/skratchdot/open-golang/open"
)

// SettingsURL opens the accessibility pane of the macOS privacy settings.
const SettingsURL = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"

// State is the outcome of the most recent permission check.
type State int32

const (
	Unchecked State = iota
	Denied
	Granted
)

func (s State) String() string {
	switch s {
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	default:
		return "unchecked"
	}
}

// Permission reports whether the process may inject input events.
type Permission interface {
	Trusted() bool
}

// Prompter explains the missing permission and blocks until the user answers.
type Prompter interface {
	// Prompt reports whether the user chose to open the settings page.
	Prompt() (openSettings bool)
}

// Synthesizer posts the paste key chord to the focused application.
type Synthesizer interface {
	PasteKeystroke()
}

// Poster schedules a function to run after the current task.
// *runloop.Loop satisfies it.
type Poster interface {
	Post(fn func())
}

// Platform bundles the OS facilities the gate needs.
type Platform struct {
	Permission  Permission
	Prompter    Prompter
	Synthesizer Synthesizer
	// Open navigates to a URL. Defaults to open.Run.
	Open func(url string) error
}

// Gate is the input-synthesis gate.
type Gate struct {
	loop  Poster
	p     Platform
	state atomic.Int32
}

// New returns a Gate. p.Permission, p.Prompter and p.Synthesizer must be set;
// see package native for the OS implementations.
func New(loop Poster, p Platform) *Gate {
	if p.Open == nil {
		p.Open = open.Run
	}
	return &Gate{loop: loop, p: p}
}

// State returns the result of the last check.
func (g *Gate) State() State { return State(g.state.Load()) }

// Paste checks the permission and schedules the keystroke.
//
// When access is missing, suspendFocusReturn (if non-nil) is called before
// anything else so the caller can cancel a pending "return focus to the
// previous application", the permission prompt is scheduled, and no input is
// synthesized.
func (g *Gate) Paste(suspendFocusReturn func()) State {
	if !g.p.Permission.Trusted() {
		g.state.Store(int32(Denied))
		slog.Warn("accessibility permission missing, paste not synthesized")
		if suspendFocusReturn != nil {
			suspendFocusReturn()
		}
		g.loop.Post(g.requestPermission)
		return Denied
	}

	g.state.Store(int32(Granted))
	g.loop.Post(func() {
		g.p.Synthesizer.PasteKeystroke()
		slog.Debug("paste keystroke sent")
	})
	return Granted
}

func (g *Gate) requestPermission() {
	if !g.p.Prompter.Prompt() {
		slog.Info("accessibility permission request declined")
		return
	}
	if err := g.p.Open(SettingsURL); err != nil {
		slog.Error("open accessibility settings failed", "url", SettingsURL, "err", err)
	}
}
