// Package recognizer defines the speech-recognition boundary of the session
// core. A Recognizer hands out one Span per recording; the span accepts raw
// PCM16 buffers one at a time, reports finalized utterance fragments as they
// complete, and flushes a best-effort tail when the recording stops.
package recognizer

import (
	"context"
	"fmt"
)

// Result is the outcome of feeding one audio buffer to a span. Final is true
// when the buffer completed an utterance boundary; Text is only meaningful in
// that case. Interim hypotheses are discarded at this boundary.
type Result struct {
	Text  string
	Final bool
}

// Span is the recognizer state for a single recording. It is owned
// exclusively by the capture pipeline for the duration of the recording and
// must not be shared across spans.
type Span interface {
	// Accept feeds one PCM16 buffer. An error applies to this buffer only;
	// the span remains usable.
	Accept(pcm []byte) (Result, error)
	// Flush returns best-effort text for any buffered-but-incomplete audio.
	// The span must not be fed after Flush.
	Flush() (string, error)
	Close() error
}

type Recognizer interface {
	Name() string
	NewSpan(ctx context.Context) (Span, error)
}

// Config selects and parameterizes a recognizer backend.
type Config struct {
	Backend      string // "vosk", "whisper", or "" for auto
	VoskURL      string
	OpenAIAPIKey string
	WhisperModel string
}

// New picks a backend: an explicitly configured one, otherwise whisper when
// an API key is available, otherwise a local vosk server.
func New(cfg Config) (Recognizer, error) {
	switch cfg.Backend {
	case "vosk":
		if cfg.VoskURL == "" {
			return nil, fmt.Errorf("vosk recognizer needs a server URL")
		}
		return NewVosk(cfg.VoskURL), nil
	case "whisper":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("whisper recognizer needs OPENAI_API_KEY")
		}
		return NewWhisper(cfg.OpenAIAPIKey, cfg.WhisperModel), nil
	case "":
		if cfg.OpenAIAPIKey != "" {
			return NewWhisper(cfg.OpenAIAPIKey, cfg.WhisperModel), nil
		}
		if cfg.VoskURL != "" {
			return NewVosk(cfg.VoskURL), nil
		}
		return nil, fmt.Errorf("no recognizer available: set OPENAI_API_KEY or a vosk server URL")
	default:
		return nil, fmt.Errorf("unknown recognizer %q", cfg.Backend)
	}
}
