// Package catalog provides a voice.Source backed by a YAML document, typically
// a capture of a host's voice database. It allows the lister to run on hosts
// without a speech synthesizer and to replay a known voice set.
//
// The document has the form:
//
//	voices:
//	  - identifier: com.apple.voice.premium.en-US.Ava
//	    name: Ava
//	    gender: VoiceGenderFemale
//	    age: 35
//	    locale: en_US
//	    desirability: 15000
//
// Every field is optional at the decoding level so that incomplete captures are
// reported by voice.Parse rather than rejected here.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MrWong99/voicelist/pkg/voice"
)

var _ voice.Source = (*Source)(nil)

// Entry is one voice in the document. Scalars are kept as strings so that a
// non-numeric desirability survives decoding.
type Entry struct {
	Identifier   *string `yaml:"identifier"`
	Name         *string `yaml:"name"`
	Gender       *string `yaml:"gender"`
	Age          *string `yaml:"age"`
	Locale       *string `yaml:"locale"`
	Desirability *string `yaml:"desirability"`
}

type document struct {
	Voices []Entry `yaml:"voices"`
}

// Source serves voices from a decoded document. It is read-only after
// construction.
//
// Handles are the decimal positions of the entries in the document ("0",
// "1", ...), so repeated or missing identifiers never merge two entries.
type Source struct {
	entries []voice.Attributes
}

// Load reads the catalogue at path.
func Load(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	s, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}
	return s, nil
}

// LoadFromReader decodes a catalogue from r.
func LoadFromReader(r io.Reader) (*Source, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return New(doc.Voices), nil
}

// New builds a Source from entries, preserving their order.
func New(entries []Entry) *Source {
	s := &Source{entries: make([]voice.Attributes, 0, len(entries))}
	for _, e := range entries {
		s.entries = append(s.entries, e.attributes())
	}
	return s
}

func (e Entry) attributes() voice.Attributes {
	attrs := voice.Attributes{}
	set := func(key string, v *string) {
		if v != nil {
			attrs[key] = *v
		}
	}
	set(voice.AttrIdentifier, e.Identifier)
	set(voice.AttrName, e.Name)
	set(voice.AttrGender, e.Gender)
	set(voice.AttrAge, e.Age)
	set(voice.AttrLocale, e.Locale)
	set(voice.AttrDesirability, e.Desirability)
	return attrs
}

// AvailableVoices returns one handle per entry, in document order.
func (s *Source) AvailableVoices(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(s.entries))
	for i := range s.entries {
		out[i] = strconv.Itoa(i)
	}
	return out, nil
}

// AttributesForVoice returns the attributes of the entry with the given handle.
func (s *Source) AttributesForVoice(ctx context.Context, handle string) (voice.Attributes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, err := strconv.Atoi(handle)
	if err != nil || i < 0 || i >= len(s.entries) || strconv.Itoa(i) != handle {
		return nil, fmt.Errorf("catalog: unknown voice %q", handle)
	}
	return maps.Clone(s.entries[i]), nil
}
