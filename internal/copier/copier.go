// Package copier implements the copy-to-clipboard action. A failed copy is
// reported through the returned label only and never aborts the caller.
package copier

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// Label is the transient text shown on the copy control.
type Label string

const (
	LabelIdle   Label = "COPY"
	LabelCopied Label = "COPIED"
	LabelFailed Label = "FAILED"
)

// Copier writes text to the system clipboard.
type Copier struct {
	// Write defaults to clipboard.WriteAll.
	Write func(text string) error
}

// Copy writes text and returns the label to display.
func (c Copier) Copy(text string) Label {
	write := c.Write
	if write == nil {
		if !available() {
			log.Warn().Msg("no clipboard backend found")
			return LabelFailed
		}
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		log.Warn().Err(err).Msg("clipboard copy failed")
		return LabelFailed
	}
	log.Debug().Int("bytes", len(text)).Msg("copied to clipboard")
	return LabelCopied
}

// available reports whether a system clipboard backend was found.
func available() bool {
	return !clipboard.Unsupported
}
