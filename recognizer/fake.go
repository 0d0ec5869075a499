package recognizer

import (
	"context"
	"sync"
)

// Fake is a scripted recognizer for tests. Each Accept call pops the next
// scripted result; Flush returns the configured tail.
type Fake struct {
	Results  []Result
	Tail     string
	SpanErr  error // returned from NewSpan
	FeedErr  error // returned from every Accept
	FlushErr error

	mu    sync.Mutex
	spans int
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) NewSpan(_ context.Context) (Span, error) {
	if f.SpanErr != nil {
		return nil, f.SpanErr
	}
	f.mu.Lock()
	f.spans++
	f.mu.Unlock()
	results := make([]Result, len(f.Results))
	copy(results, f.Results)
	return &fakeSpan{parent: f, results: results}, nil
}

// Spans reports how many spans were created, to assert exclusive per-span
// recognizer ownership.
func (f *Fake) Spans() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spans
}

type fakeSpan struct {
	parent  *Fake
	results []Result
	fed     int
	closed  bool
}

func (s *fakeSpan) Accept(pcm []byte) (Result, error) {
	if s.parent.FeedErr != nil {
		return Result{}, s.parent.FeedErr
	}
	s.fed++
	if len(s.results) == 0 {
		return Result{}, nil
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r, nil
}

func (s *fakeSpan) Flush() (string, error) {
	if s.parent.FlushErr != nil {
		return "", s.parent.FlushErr
	}
	return s.parent.Tail, nil
}

func (s *fakeSpan) Close() error {
	s.closed = true
	return nil
}
