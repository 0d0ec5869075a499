package audio

import (
	"errors"
	"testing"
)

var errFake = errors.New("fake device error")

func TestFrameSourceDelivery(t *testing.T) {
	dev := NewFakeCapture(nil)
	src := NewFrameSource(dev, 4)
	if err := src.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer src.Stop()

	dev.Push([]byte{1, 2})
	dev.Push([]byte{3, 4})

	got := <-src.Frames()
	if got[0] != 1 {
		t.Errorf("first frame = %v, want [1 2]", got)
	}
	got = <-src.Frames()
	if got[0] != 3 {
		t.Errorf("second frame = %v, want [3 4]", got)
	}
	if n := src.Dropped(); n != 0 {
		t.Errorf("Dropped() = %d, want 0", n)
	}
}

func TestFrameSourceCopiesData(t *testing.T) {
	dev := NewFakeCapture(nil)
	src := NewFrameSource(dev, 4)
	if err := src.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer src.Stop()

	buf := []byte{7, 7}
	dev.Push(buf)
	buf[0] = 0 // device reuses its buffer

	got := <-src.Frames()
	if got[0] != 7 {
		t.Errorf("frame aliases device buffer: got %v", got)
	}
}

func TestFrameSourceDropsOldestWhenFull(t *testing.T) {
	dev := NewFakeCapture(nil)
	src := NewFrameSource(dev, 2)
	if err := src.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer src.Stop()

	dev.Push([]byte{1, 0})
	dev.Push([]byte{2, 0})
	dev.Push([]byte{3, 0}) // evicts frame 1

	if n := src.Dropped(); n != 1 {
		t.Fatalf("Dropped() = %d, want 1", n)
	}

	got := <-src.Frames()
	if got[0] != 2 {
		t.Errorf("oldest surviving frame = %d, want 2", got[0])
	}
	got = <-src.Frames()
	if got[0] != 3 {
		t.Errorf("newest frame = %d, want 3", got[0])
	}
}

func TestFrameSourceStartErrorClearsCallback(t *testing.T) {
	dev := NewFakeCapture(nil)
	dev.FailStart(errFake)
	src := NewFrameSource(dev, 2)
	if err := src.Start(); err == nil {
		t.Fatal("expected Start error")
	}
	dev.Push([]byte{1, 0})
	select {
	case f := <-src.Frames():
		t.Errorf("unexpected frame %v after failed Start", f)
	default:
	}
}
