package writer

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const beepDuration = 100 // ms

// Beep plays a short system tone.
type Beep struct{}

func (Beep) Play() {
	if err := beeep.Beep(beeep.DefaultFreq, beepDuration); err != nil {
		slog.Warn("confirmation sound failed", "err", err)
	}
}
