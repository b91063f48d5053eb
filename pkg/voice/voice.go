// Package voice defines the data model for installed text-to-speech voices and
// the Source interface through which they are enumerated.
//
// A Source wraps a platform speech database (e.g., the macOS NSSpeechSynthesizer
// catalogue, or a YAML capture of one) and presents two calls: one returning
// the opaque voice handles in platform order, and one returning the attribute
// mapping for a single handle. [Parse] turns such a mapping into a [Voice].
package voice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Attribute keys reported by the platform attribute query. The values match the
// NSVoice* constants of AppKit.
const (
	AttrIdentifier   = "VoiceIdentifier"
	AttrName         = "VoiceName"
	AttrGender       = "VoiceGender"
	AttrAge          = "VoiceAge"
	AttrLocale       = "VoiceLocaleIdentifier"
	AttrDesirability = "VoiceRelativeDesirability"
)

// requiredAttrs lists the attributes every enumerated voice must carry.
var requiredAttrs = []string{AttrIdentifier, AttrName, AttrGender, AttrAge, AttrLocale}

// ErrMissingAttribute is returned by [Parse] when one of the required
// attributes is absent from the mapping.
var ErrMissingAttribute = errors.New("voice: missing required attribute")

// Attributes maps attribute keys to their stringified values.
type Attributes map[string]string

// Source is the abstraction over a platform voice database.
//
// Implementations are called sequentially by the lister; they need not be safe
// for concurrent use.
type Source interface {
	// AvailableVoices returns the handles of all installed voices in the order
	// the platform reports them.
	AvailableVoices(ctx context.Context) ([]string, error)

	// AttributesForVoice returns the attribute mapping for the voice identified
	// by handle.
	AttributesForVoice(ctx context.Context, handle string) (Attributes, error)
}

// DesirabilityState distinguishes the three ways the desirability attribute
// can arrive.
type DesirabilityState int

const (
	// DesirabilityAbsent means the attribute was not reported at all.
	DesirabilityAbsent DesirabilityState = iota

	// DesirabilityUnparsed means the attribute was reported but is not a
	// signed integer.
	DesirabilityUnparsed

	// DesirabilityParsed means the attribute was reported and parsed.
	DesirabilityParsed
)

// String returns a lowercase name for s.
func (s DesirabilityState) String() string {
	switch s {
	case DesirabilityAbsent:
		return "absent"
	case DesirabilityUnparsed:
		return "unparsed"
	case DesirabilityParsed:
		return "parsed"
	}
	return fmt.Sprintf("DesirabilityState(%d)", int(s))
}

// Desirability is the optional relative-desirability score of a voice.
// The zero value is an absent score.
type Desirability struct {
	State DesirabilityState

	// Raw is the attribute value as reported. Empty when absent.
	Raw string

	value int
}

// ParseDesirability interprets raw as reported by the platform. ok reports
// whether the attribute was present at all. raw must be a bare base-10
// integer; surrounding whitespace makes it unparsed.
func ParseDesirability(raw string, ok bool) Desirability {
	if !ok {
		return Desirability{}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Desirability{State: DesirabilityUnparsed, Raw: raw}
	}
	return Desirability{State: DesirabilityParsed, Raw: raw, value: n}
}

// Present reports whether the attribute was reported, regardless of whether it
// parsed.
func (d Desirability) Present() bool { return d.State != DesirabilityAbsent }

// Parsed reports whether the attribute was reported and parsed.
func (d Desirability) Parsed() bool { return d.State == DesirabilityParsed }

// Value returns the parsed score, or 0 when absent or unparsed.
func (d Desirability) Value() int { return d.value }

// Voice is the metadata of a single installed voice.
type Voice struct {
	// Identifier is the platform's handle for the voice
	// (e.g., "com.apple.voice.premium.en-US.Ava").
	Identifier string

	// Name is the human-readable display name.
	Name string

	// Gender is the platform gender string (e.g., "VoiceGenderFemale").
	Gender string

	// Age is the platform-reported age, kept as its string form.
	Age string

	// Locale is the platform locale identifier (e.g., "en_US").
	Locale string

	Desirability Desirability
}

// Parse extracts a Voice from attrs. It returns an error wrapping
// [ErrMissingAttribute] when any required attribute is absent; the
// desirability attribute is optional.
func Parse(attrs Attributes) (Voice, error) {
	for _, key := range requiredAttrs {
		if _, ok := attrs[key]; !ok {
			return Voice{}, fmt.Errorf("%w %q", ErrMissingAttribute, key)
		}
	}
	raw, ok := attrs[AttrDesirability]
	return Voice{
		Identifier:   attrs[AttrIdentifier],
		Name:         attrs[AttrName],
		Gender:       attrs[AttrGender],
		Age:          attrs[AttrAge],
		Locale:       attrs[AttrLocale],
		Desirability: ParseDesirability(raw, ok),
	}, nil
}
