//go:build !darwin

// Package native provides the OS accessibility, prompt and keystroke
// facilities for the input-synthesis gate.
package native

import (
	"log/slog"

	"github.com/gen2brain/beeep"
	"github.com/go-vgo/robotgo"

	"go.klb.dev/clipkeep/internal/gate"
)

// Platform returns robotgo-based synthesis. Outside macOS there is no
// per-process accessibility gate, so permission is always granted and the
// prompt is only a notification.
func Platform() gate.Platform {
	return gate.Platform{
		Permission:  grantedPermission{},
		Prompter:    notifyPrompter{},
		Synthesizer: robotSynthesizer{},
	}
}

type grantedPermission struct{}

func (grantedPermission) Trusted() bool { return true }

type notifyPrompter struct{}

func (notifyPrompter) Prompt() bool {
	if err := beeep.Alert("clipkeep", "Input synthesis is not permitted; paste manually.", ""); err != nil {
		slog.Warn("permission notification failed", "err", err)
	}
	return false
}

// robotSynthesizer cannot hold back local input while the chord is sent.
type robotSynthesizer struct{}

func (robotSynthesizer) PasteKeystroke() {
	if err := robotgo.KeyTap("v", "ctrl"); err != nil {
		slog.Error("paste keystroke failed", "err", err)
	}
}
