package session

import (
	"encoding/binary"
	"testing"
)

func feedN(m *silenceMonitor, speech bool, n int) silenceEvent {
	var last silenceEvent
	for i := 0; i < n; i++ {
		last = m.Tick(speech)
	}
	return last
}

func TestSilenceWarnAfter8s(t *testing.T) {
	m := newSilenceMonitor()
	// 79 ticks of silence — no warning yet
	for i := 0; i < 79; i++ {
		if ev := m.Tick(false); ev != silenceNone {
			t.Fatalf("unexpected event at tick %d: %d", i, ev)
		}
	}
	// 80th tick triggers warning (8s)
	if ev := m.Tick(false); ev != silenceWarn {
		t.Fatalf("expected silenceWarn at tick 80, got %d", ev)
	}
}

func TestSilenceWarnClearsOnSpeech(t *testing.T) {
	m := newSilenceMonitor()
	feedN(m, false, 80) // triggers warn

	// Sustained speech clears warning (need 25% of 80-tick window)
	for i := 0; i < 80; i++ {
		if ev := m.Tick(true); ev == silenceWarnClear {
			return
		}
	}
	t.Fatal("expected silenceWarnClear after speech")
}

func TestNoWarnDuringSpeech(t *testing.T) {
	m := newSilenceMonitor()
	for i := 0; i < 200; i++ {
		if ev := m.Tick(true); ev == silenceWarn {
			t.Fatalf("unexpected warn during speech at tick %d", i)
		}
	}
}

func TestWarnOnlyOnce(t *testing.T) {
	m := newSilenceMonitor()
	warns := 0
	for i := 0; i < 300; i++ {
		if ev := m.Tick(false); ev == silenceWarn {
			warns++
		}
	}
	if warns != 1 {
		t.Fatalf("expected exactly 1 silenceWarn, got %d", warns)
	}
}

func TestWarnStaysDuringNoise(t *testing.T) {
	m := newSilenceMonitor()
	feedN(m, false, 80) // triggers warn

	// Occasional energy spikes (< 25% speech) should NOT clear
	for i := 0; i < 80; i++ {
		speech := i%10 == 0 // 10% speech — below clear threshold
		if ev := m.Tick(speech); ev == silenceWarnClear {
			t.Fatalf("warning cleared with 10%% speech at tick %d", i)
		}
	}
}

func TestFrameHasSpeech(t *testing.T) {
	quiet := make([]byte, 640)
	if frameHasSpeech(quiet) {
		t.Error("silence classified as speech")
	}

	loud := make([]byte, 640)
	for i := 0; i < len(loud)/2; i++ {
		binary.LittleEndian.PutUint16(loud[2*i:], uint16(int16(8000)))
	}
	if !frameHasSpeech(loud) {
		t.Error("loud tone classified as silence")
	}

	if frameHasSpeech(nil) {
		t.Error("empty frame classified as speech")
	}
}
