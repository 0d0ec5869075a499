package session

import (
	"strings"
	"time"

	"iva/audio"
	"iva/log"
	"iva/recognizer"
)

// finalizeSpeech consumes frames from src and feeds them to span until stop
// is signaled, then drains whatever the device queued, flushes the span and
// returns the trimmed finalized text. Frames already queued when stop fires
// are still recognized; a per-frame recognition error skips that frame only.
// onSilence is invoked from this goroutine when the span's speech energy
// crosses the warn/clear thresholds.
func finalizeSpeech(src *audio.FrameSource, span recognizer.Span, stop <-chan struct{}, onSilence func(silenceEvent)) string {
	var fragments []string
	monitor := newSilenceMonitor()
	sawSpeech := false

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	accept := func(frame audio.Frame) {
		if frameHasSpeech(frame) {
			sawSpeech = true
		}
		res, err := span.Accept(frame)
		if err != nil {
			log.Warnf("recognition error, frame skipped: %v", err)
			return
		}
		if res.Final && res.Text != "" {
			fragments = append(fragments, res.Text)
		}
	}

loop:
	for {
		select {
		case <-stop:
			break loop
		case frame := <-src.Frames():
			accept(frame)
		case <-ticker.C:
			if ev := monitor.Tick(sawSpeech); ev != silenceNone && onSilence != nil {
				onSilence(ev)
			}
			sawSpeech = false
		}
	}

drain:
	for {
		select {
		case frame := <-src.Frames():
			accept(frame)
		default:
			break drain
		}
	}

	tail, err := span.Flush()
	if err != nil {
		log.Warnf("recognizer flush failed: %v", err)
	} else if tail != "" {
		fragments = append(fragments, tail)
	}

	return strings.TrimSpace(strings.Join(fragments, " "))
}
