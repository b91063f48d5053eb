// Package mock provides a test double for the voice.Source interface.
//
// Example:
//
//	s := &mock.Source{
//	    Voices: []voice.Attributes{
//	        {voice.AttrIdentifier: "com.test.voice1", voice.AttrName: "Ava", ...},
//	    },
//	}
//	handles, _ := s.AvailableVoices(ctx)
package mock

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/MrWong99/voicelist/pkg/voice"
)

// AttributesForVoiceCall records a single invocation of AttributesForVoice.
type AttributesForVoiceCall struct {
	Ctx    context.Context
	Handle string
}

// Source is a mock implementation of voice.Source.
//
// Handles are taken from each entry's voice.AttrIdentifier value; entries without
// one are assigned "voice-<index>". Both methods fail when two entries end up
// with the same handle, since such a fixture could not address every voice.
type Source struct {
	mu sync.Mutex

	// --- Configurable responses ---

	// Voices is the catalogue, in enumeration order.
	Voices []voice.Attributes

	// AvailableVoicesErr, if non-nil, is returned from AvailableVoices.
	AvailableVoicesErr error

	// AttributesErr maps a handle to an error returned from AttributesForVoice.
	AttributesErr map[string]error

	// --- Call records ---

	AvailableVoicesCalls    int
	AttributesForVoiceCalls []AttributesForVoiceCall
}

func handleFor(i int, attrs voice.Attributes) string {
	if id, ok := attrs[voice.AttrIdentifier]; ok {
		return id
	}
	return fmt.Sprintf("voice-%d", i)
}

// handles must be called with s.mu held.
func (s *Source) handles() ([]string, error) {
	out := make([]string, len(s.Voices))
	seen := make(map[string]int, len(s.Voices))
	for i, attrs := range s.Voices {
		h := handleFor(i, attrs)
		if j, dup := seen[h]; dup {
			return nil, fmt.Errorf("mock: voices %d and %d share handle %q", j, i, h)
		}
		seen[h] = i
		out[i] = h
	}
	return out, nil
}

// AvailableVoices records the call and returns the handles of Voices.
func (s *Source) AvailableVoices(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AvailableVoicesCalls++
	if s.AvailableVoicesErr != nil {
		return nil, s.AvailableVoicesErr
	}
	return s.handles()
}

// AttributesForVoice records the call and returns a copy of the matching entry.
func (s *Source) AttributesForVoice(ctx context.Context, handle string) (voice.Attributes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AttributesForVoiceCalls = append(s.AttributesForVoiceCalls, AttributesForVoiceCall{Ctx: ctx, Handle: handle})
	if err := s.AttributesErr[handle]; err != nil {
		return nil, err
	}
	handles, err := s.handles()
	if err != nil {
		return nil, err
	}
	for i, h := range handles {
		if h == handle {
			return maps.Clone(s.Voices[i]), nil
		}
	}
	return nil, fmt.Errorf("mock: unknown voice %q", handle)
}

// Reset clears all recorded calls.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AvailableVoicesCalls = 0
	s.AttributesForVoiceCalls = nil
}

var _ voice.Source = (*Source)(nil)
