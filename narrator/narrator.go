// Package narrator converts interviewer output to audible speech. Speak
// blocks until playback completes; callers are responsible for never issuing
// two overlapping calls (the session controller funnels all narration
// through one worker).
package narrator

import "context"

type Narrator interface {
	Speak(ctx context.Context, text string) error
}

// Quiet is a no-op narrator for muted or headless runs.
type Quiet struct{}

func (Quiet) Speak(context.Context, string) error { return nil }
