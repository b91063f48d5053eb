// Package macos provides the voice.Source backed by the host's speech
// synthesizer. On darwin it queries NSSpeechSynthesizer through cgo; on every
// other platform the source reports [ErrUnsupported].
package macos

import (
	"errors"

	"github.com/MrWong99/voicelist/pkg/voice"
)

// ErrUnsupported is returned by the Source on platforms without a system
// speech synthesizer bridge.
var ErrUnsupported = errors.New("macos: system voice database is not available on this platform")

var _ voice.Source = (*Source)(nil)

// Source enumerates the voices installed on the host. The zero value is ready
// to use.
type Source struct{}

// New returns a Source for the host's voice database.
func New() *Source { return &Source{} }
