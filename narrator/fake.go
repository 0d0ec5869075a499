package narrator

import (
	"context"
	"sync"
	"time"
)

// Window is one fake playback interval.
type Window struct {
	Text  string
	Start time.Time
	End   time.Time
}

// Fake records playback windows so tests can assert narration never
// overlaps. Each Speak call "plays" for Delay.
type Fake struct {
	Delay time.Duration

	mu      sync.Mutex
	playing bool
	windows []Window
	overlap bool
}

func (f *Fake) Speak(ctx context.Context, text string) error {
	f.mu.Lock()
	if f.playing {
		f.overlap = true
	}
	f.playing = true
	start := time.Now()
	f.mu.Unlock()

	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}

	f.mu.Lock()
	f.playing = false
	f.windows = append(f.windows, Window{Text: text, Start: start, End: time.Now()})
	f.mu.Unlock()
	return nil
}

func (f *Fake) Windows() []Window {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Window, len(f.windows))
	copy(out, f.windows)
	return out
}

// Overlapped reports whether two Speak calls were ever in flight at once.
func (f *Fake) Overlapped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlap
}
