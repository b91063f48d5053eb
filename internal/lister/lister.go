// Package lister implements the voice listing pass: enumerate the voices of a
// voice.Source, parse their attributes, and render each one either as a
// detailed block (desirability at or above the threshold) or an abbreviated
// one.
//
// The output format is stable and meant to be consumed by scripts:
//
//	com.apple.voice.premium.en-US.Ava
//	 -> Ava       	F	 35	en_US
//	 ->15000
//
//	Daniel    : 0
//
// Voices are rendered in the order the source reports them; nothing is sorted.
package lister

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/MrWong99/voicelist/internal/observe"
	"github.com/MrWong99/voicelist/pkg/voice"
)

// DefaultThreshold is the desirability score from which a voice counts as
// high quality.
const DefaultThreshold = 13400

// Option is a functional option for configuring a Lister.
type Option func(*Lister)

// WithThreshold sets the minimum desirability for the detailed block.
// Defaults to [DefaultThreshold].
func WithThreshold(n int) Option {
	return func(l *Lister) {
		l.threshold = n
	}
}

// WithLanguage restricts the output to voices whose locale has the same base
// language as tag (e.g., "en" matches "en_US" and "en_GB"). Voices whose
// locale does not parse are dropped while a filter is set. language.Und
// disables filtering.
func WithLanguage(tag language.Tag) Option {
	return func(l *Lister) {
		l.language = tag
	}
}

// WithMetrics records listing metrics on m. Defaults to
// [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(l *Lister) {
		l.metrics = m
	}
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lister) {
		l.logger = logger
	}
}

// Lister renders the voices of a voice.Source. It holds no state between
// calls, so listing an unchanged source twice yields identical output.
type Lister struct {
	threshold int
	language  language.Tag
	metrics   *observe.Metrics
	logger    *slog.Logger
}

// New creates a Lister with the given options.
func New(opts ...Option) *Lister {
	l := &Lister{
		threshold: DefaultThreshold,
		language:  language.Und,
	}
	for _, o := range opts {
		o(l)
	}
	if l.metrics == nil {
		l.metrics = observe.DefaultMetrics()
	}
	return l
}

// Threshold returns the configured desirability threshold.
func (l *Lister) Threshold() int { return l.threshold }

// Lines enumerates src and returns the rendered output lines, without
// trailing newlines. It fails on the first source error or on a voice missing
// a required attribute; lines rendered before the failure are discarded.
func (l *Lister) Lines(ctx context.Context, src voice.Source) ([]string, error) {
	ctx, span := observe.StartSpan(ctx, "lister.Lines")
	defer span.End()
	log := observe.Logger(ctx, l.logger)

	start := time.Now()
	defer func() {
		l.metrics.ListDuration.Record(ctx, time.Since(start).Seconds())
	}()

	handles, err := src.AvailableVoices(ctx)
	if err != nil {
		l.metrics.RecordSourceError(ctx, "enumerate")
		span.RecordError(err)
		return nil, fmt.Errorf("lister: enumerate voices: %w", err)
	}
	l.metrics.VoicesEnumerated.Add(ctx, int64(len(handles)))
	log.Debug("voices enumerated", "count", len(handles))

	var lines []string
	for _, handle := range handles {
		attrs, err := src.AttributesForVoice(ctx, handle)
		if err != nil {
			l.metrics.RecordSourceError(ctx, "attributes")
			span.RecordError(err)
			return nil, fmt.Errorf("lister: attributes of %q: %w", handle, err)
		}
		v, err := voice.Parse(attrs)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("lister: voice %q: %w", handle, err)
		}
		if !l.matchesLanguage(v) {
			log.Debug("voice filtered by language", "voice", v.Identifier, "locale", v.Locale)
			continue
		}
		if v.Desirability.State == voice.DesirabilityUnparsed {
			log.Debug("unparseable desirability, using 0", "voice", v.Identifier, "raw", v.Desirability.Raw)
		}

		if Detailed(v, l.threshold) {
			l.metrics.VoicesDetailed.Add(ctx, 1)
		} else {
			l.metrics.RecordAbbreviated(ctx, v.Desirability.State.String())
		}
		lines = append(lines, Format(v, l.threshold)...)
	}
	return lines, nil
}

// Write renders src to w, one line per [Lister.Lines] entry, each terminated
// by a newline. Nothing is written when listing fails.
func (l *Lister) Write(ctx context.Context, src voice.Source, w io.Writer) error {
	lines, err := l.Lines(ctx, src)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("lister: write output: %w", err)
	}
	return nil
}

func (l *Lister) matchesLanguage(v voice.Voice) bool {
	if l.language.IsRoot() {
		return true
	}
	tag, err := language.Parse(v.Locale)
	if err != nil {
		return false
	}
	want, _ := l.language.Base()
	got, _ := tag.Base()
	return want == got
}
