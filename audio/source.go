package audio

import (
	"sync/atomic"
)

// Frame is one capture callback's worth of PCM16 samples, copied out of the
// device buffer. Each frame is consumed exactly once.
type Frame []byte

// FrameSource couples a capture device with a bounded FIFO of frames. The
// device callback must never block: when the queue is full the oldest frame
// is discarded to make room, and the drop is counted so the consumer can
// report sustained backpressure instead of silently losing audio.
type FrameSource struct {
	dev     CaptureDevice
	frames  chan Frame
	dropped atomic.Uint64
}

const DefaultQueueDepth = 64

func NewFrameSource(dev CaptureDevice, depth int) *FrameSource {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &FrameSource{
		dev:    dev,
		frames: make(chan Frame, depth),
	}
}

// Start installs the enqueueing callback and starts the device.
func (s *FrameSource) Start() error {
	s.dev.SetCallback(func(data []byte, _ uint32) {
		if len(data) == 0 {
			return
		}
		frame := make(Frame, len(data))
		copy(frame, data)
		select {
		case s.frames <- frame:
		default:
			// Full queue: evict the oldest frame, then retry once. A second
			// failure means the consumer raced us to refill; drop the new
			// frame rather than block the device thread.
			select {
			case <-s.frames:
			default:
			}
			select {
			case s.frames <- frame:
			default:
			}
			s.dropped.Add(1)
		}
	})
	if err := s.dev.Start(); err != nil {
		s.dev.ClearCallback()
		return err
	}
	return nil
}

// Stop halts capture and detaches the callback. Frames already queued remain
// readable afterwards.
func (s *FrameSource) Stop() {
	s.dev.Stop()
	s.dev.ClearCallback()
}

func (s *FrameSource) Frames() <-chan Frame {
	return s.frames
}

// Dropped reports how many frames were discarded under backpressure.
func (s *FrameSource) Dropped() uint64 {
	return s.dropped.Load()
}
