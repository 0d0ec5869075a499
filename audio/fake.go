package audio

import (
	"sync"
	"time"
)

const fakeChunkBytes = 3200 // 100 ms at 16 kHz mono PCM16

// FakeCapture is an in-memory capture device for tests. It can replay a
// canned PCM buffer in chunks after Start, and frames can also be injected
// directly with Push.
type FakeCapture struct {
	pcm      []byte
	interval time.Duration

	mu       sync.Mutex
	cb       DataCallback
	stopCh   chan struct{}
	feedDone chan struct{}
	startErr error
}

func NewFakeCapture(pcm []byte) *FakeCapture {
	return &FakeCapture{pcm: pcm, interval: time.Millisecond}
}

// FailStart makes the next Start return err, for capture-error paths.
func (f *FakeCapture) FailStart(err error) { f.startErr = err }

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

func (f *FakeCapture) DeviceName() string { return "fake" }

// Push delivers one frame through the installed callback, as if the device
// produced it.
func (f *FakeCapture) Push(data []byte) {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	if cb != nil {
		cb(data, uint32(len(data)/2))
	}
}

func (f *FakeCapture) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})

	go func() {
		defer close(f.feedDone)
		pos := 0
		for pos < len(f.pcm) {
			select {
			case <-f.stopCh:
				return
			case <-time.After(f.interval):
			}
			end := min(pos+fakeChunkBytes, len(f.pcm))
			chunk := make([]byte, end-pos)
			copy(chunk, f.pcm[pos:end])
			f.Push(chunk)
			pos = end
		}
	}()

	return nil
}

func (f *FakeCapture) Stop() {
	if f.stopCh == nil {
		return
	}
	select {
	case <-f.stopCh:
	default:
		close(f.stopCh)
	}
	<-f.feedDone
}

func (f *FakeCapture) Close() {}

// FakeContext hands out FakeCaptures replaying the same PCM buffer.
type FakeContext struct {
	pcm []byte
}

func NewFakeContext(pcm []byte) *FakeContext {
	return &FakeContext{pcm: pcm}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) { return nil, nil }
func (f *FakeContext) Close()                         {}

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig) (CaptureDevice, error) {
	return NewFakeCapture(f.pcm), nil
}
