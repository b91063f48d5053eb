//go:build !darwin || !cgo

package macos

import (
	"context"

	"github.com/MrWong99/voicelist/pkg/voice"
)

// AvailableVoices always fails with ErrUnsupported.
func (s *Source) AvailableVoices(ctx context.Context) ([]string, error) {
	return nil, ErrUnsupported
}

// AttributesForVoice always fails with ErrUnsupported.
func (s *Source) AttributesForVoice(ctx context.Context, handle string) (voice.Attributes, error) {
	return nil, ErrUnsupported
}
