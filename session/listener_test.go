package session

import (
	"context"
	"testing"
	"time"

	"iva/audio"
	"iva/recognizer"
)

// startSource builds a FrameSource over a fake device and pushes n frames
// through it before returning.
func startSource(t *testing.T, frames int) (*audio.FrameSource, *audio.FakeCapture) {
	t.Helper()
	dev := audio.NewFakeCapture(nil)
	src := audio.NewFrameSource(dev, 16)
	if err := src.Start(); err != nil {
		t.Fatalf("starting source: %v", err)
	}
	frame := make([]byte, 640)
	for i := 0; i < frames; i++ {
		dev.Push(frame)
	}
	return src, dev
}

func runFinalize(src *audio.FrameSource, span recognizer.Span, stopAfter time.Duration) string {
	stop := make(chan struct{})
	done := make(chan string, 1)
	go func() {
		done <- finalizeSpeech(src, span, stop, nil)
	}()
	time.Sleep(stopAfter)
	close(stop)
	return <-done
}

func TestFinalizeJoinsFragments(t *testing.T) {
	fake := &recognizer.Fake{
		Results: []recognizer.Result{
			{Text: "hello", Final: true},
			{Text: "world", Final: true},
		},
	}
	span, err := fake.NewSpan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	src, dev := startSource(t, 2)
	defer src.Stop()
	defer dev.Close()

	got := runFinalize(src, span, 50*time.Millisecond)
	if got != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", got)
	}
}

func TestFinalizeAppendsFlushTail(t *testing.T) {
	fake := &recognizer.Fake{
		Results: []recognizer.Result{{Text: "partial", Final: true}},
		Tail:    "answer",
	}
	span, _ := fake.NewSpan(context.Background())

	src, dev := startSource(t, 1)
	defer src.Stop()
	defer dev.Close()

	got := runFinalize(src, span, 50*time.Millisecond)
	if got != "partial answer" {
		t.Fatalf("expected %q, got %q", "partial answer", got)
	}
}

func TestFinalizeSilentSpanIsEmpty(t *testing.T) {
	fake := &recognizer.Fake{}
	span, _ := fake.NewSpan(context.Background())

	src, dev := startSource(t, 3)
	defer src.Stop()
	defer dev.Close()

	if got := runFinalize(src, span, 50*time.Millisecond); got != "" {
		t.Fatalf("expected empty text for silent span, got %q", got)
	}
}

func TestFinalizeSkipsInterimResults(t *testing.T) {
	fake := &recognizer.Fake{
		Results: []recognizer.Result{
			{Text: "interim guess", Final: false},
			{Text: "final", Final: true},
		},
	}
	span, _ := fake.NewSpan(context.Background())

	src, dev := startSource(t, 2)
	defer src.Stop()
	defer dev.Close()

	if got := runFinalize(src, span, 50*time.Millisecond); got != "final" {
		t.Fatalf("expected %q, got %q", "final", got)
	}
}

func TestFinalizeSurvivesFrameErrors(t *testing.T) {
	fake := &recognizer.Fake{FeedErr: context.DeadlineExceeded, Tail: "tail"}
	span, _ := fake.NewSpan(context.Background())

	src, dev := startSource(t, 3)
	defer src.Stop()
	defer dev.Close()

	// Every Accept fails; the flush tail must still come through.
	if got := runFinalize(src, span, 50*time.Millisecond); got != "tail" {
		t.Fatalf("expected %q, got %q", "tail", got)
	}
}

func TestFinalizeDrainsQueuedFramesAfterStop(t *testing.T) {
	fake := &recognizer.Fake{
		Results: []recognizer.Result{
			{Text: "queued", Final: true},
			{Text: "late", Final: true},
		},
	}
	span, _ := fake.NewSpan(context.Background())

	dev := audio.NewFakeCapture(nil)
	src := audio.NewFrameSource(dev, 16)
	if err := src.Start(); err != nil {
		t.Fatal(err)
	}
	defer src.Stop()

	// Frames pushed after stop is already closed must still be recognized.
	stop := make(chan struct{})
	close(stop)
	frame := make([]byte, 640)
	dev.Push(frame)
	dev.Push(frame)

	if got := finalizeSpeech(src, span, stop, nil); got != "queued late" {
		t.Fatalf("expected %q, got %q", "queued late", got)
	}
}
