package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"iva/audio"
	"iva/interviewer"
	"iva/log"
	"iva/narrator"
	"iva/recognizer"
)

type State int

const (
	Idle State = iota
	Active
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Recording:
		return "recording"
	}
	return "unknown"
}

const (
	firstQuestion      = "Can you please introduce yourself?"
	defaultTurnTimeout = 30 * time.Second
)

// Completion messages delivered to the run loop by background goroutines.
// Each carries the generation counter of the session it belongs to; the run
// loop discards results from a session that has since ended.
type spanDone struct {
	gen  uint64
	stop <-chan struct{} // identifies the recording this span served
	text string
	err  error
}

type turnReady struct {
	gen  uint64
	text string
	err  error
}

type evalReady struct {
	text string
	err  error
}

type silenceNote struct {
	gen uint64
	ev  silenceEvent
}

type Config struct {
	Audio       audio.Context
	Device      *audio.DeviceInfo // nil selects the default capture device
	Recognizer  recognizer.Recognizer
	Generator   interviewer.Generator
	Narrator    narrator.Narrator
	Role        interviewer.Role
	TurnTimeout time.Duration
}

// Controller owns all session state. Commands mutate state under the mutex;
// background goroutines (capture, turn generation, evaluation) never touch
// state directly and instead report completions over the inbox, consumed by
// a single run loop. Narration is serialized through one worker so two
// utterances never play at once.
type Controller struct {
	actx        audio.Context
	device      *audio.DeviceInfo
	rec         recognizer.Recognizer
	turnGen     interviewer.Generator
	voice       narrator.Narrator
	turnTimeout time.Duration

	mu              sync.Mutex
	state           State
	role            interviewer.Role
	currentQuestion string
	answers         ledger
	gen             uint64
	stopRec         chan struct{} // non-nil exactly while Recording
	closed          bool

	wg       sync.WaitGroup
	inbox    chan any
	events   chan Utterance
	narrQ    chan string
	narrDone chan struct{}
	runDone  chan struct{}
}

func New(cfg Config) *Controller {
	voice := cfg.Narrator
	if voice == nil {
		voice = narrator.Quiet{}
	}
	role := cfg.Role
	if role == "" {
		role = interviewer.RoleSoftwareDeveloper
	}
	timeout := cfg.TurnTimeout
	if timeout <= 0 {
		timeout = defaultTurnTimeout
	}
	c := &Controller{
		actx:            cfg.Audio,
		device:          cfg.Device,
		rec:             cfg.Recognizer,
		turnGen:         cfg.Generator,
		voice:           voice,
		turnTimeout:     timeout,
		role:            role,
		currentQuestion: firstQuestion,
		inbox:           make(chan any, 16),
		events:          make(chan Utterance, 64),
		narrQ:           make(chan string, 64),
		narrDone:        make(chan struct{}),
		runDone:         make(chan struct{}),
	}
	go c.run()
	go c.narrate()
	return c
}

// Events is the utterance stream consumed by the presentation layer. It is
// closed by Close.
func (c *Controller) Events() <-chan Utterance {
	return c.events
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Role() interviewer.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role
}

// SetRole changes the interview role. It takes effect on the next generated
// turn; an interview already under way keeps its collected answers.
func (c *Controller) SetRole(role interviewer.Role) {
	c.mu.Lock()
	c.role = role
	c.mu.Unlock()
}

func (c *Controller) CurrentQuestion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentQuestion
}

// Answers returns a copy of the ledger, in finalization order.
func (c *Controller) Answers() []string {
	return c.answers.Snapshot()
}

// Greet emits the startup welcome, before any interview is started.
func (c *Controller) Greet() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.emitLocked(Utterance{System, "Welcome to Mock Interview AI. You can type or speak your answers."})
}

// StartInterview moves Idle to Active with a cleared ledger and emits the
// opening utterances. A no-op when an interview is already running.
func (c *Controller) StartInterview() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != Idle {
		return
	}
	c.state = Active
	c.answers.Reset()
	log.SessionStart(c.rec.Name(), string(c.role))
	c.emitLocked(Utterance{Interviewer, "Let's begin the mock interview."})
	c.emitLocked(Utterance{Interviewer, firstQuestion})
}

// StopInterview ends the interview, stopping any recording first, and
// requests the final evaluation over the answers collected so far. The
// evaluation is published asynchronously as an Evaluation utterance. A no-op
// when Idle.
func (c *Controller) StopInterview() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state == Idle {
		return
	}
	if c.state == Recording {
		c.stopRecordingLocked()
	}
	c.state = Idle
	c.emitLocked(Utterance{Interviewer, "Interview stopped. Thank you!"})

	answers := c.answers.Snapshot()
	role := c.role
	log.SessionEnd(len(answers))

	// Anything still in flight belongs to the ended session.
	c.gen++

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.turnTimeout)
		defer cancel()
		text, err := c.turnGen.Evaluate(ctx, answers, role)
		c.inbox <- evalReady{text: text, err: err}
	}()
}

// SubmitTypedAnswer appends a typed answer to the ledger and requests the
// next interviewer turn. Empty or whitespace-only input is ignored, as is
// any input while no interview is running.
func (c *Controller) SubmitTypedAnswer(text string) {
	text = strings.TrimSpace(text)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state == Idle || text == "" {
		return
	}
	c.acceptAnswerLocked(text)
}

// StartRecording begins a voice answer. Valid only while Active: a no-op
// when Idle or already Recording.
func (c *Controller) StartRecording() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != Active {
		return
	}
	c.state = Recording
	stop := make(chan struct{})
	c.stopRec = stop
	c.emitLocked(Utterance{System, "Recording started. Speak now..."})

	c.wg.Add(1)
	go c.captureSpan(c.gen, stop)
}

// StopRecording signals the capture pipeline to finalize. The finalized text
// arrives later as a completion message; the session is Active again
// immediately. A no-op unless Recording.
func (c *Controller) StopRecording() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != Recording {
		return
	}
	c.stopRecordingLocked()
}

// stopRecordingLocked emits the stop notice before releasing the pipeline so
// the finalized answer is always ordered after it.
func (c *Controller) stopRecordingLocked() {
	c.state = Active
	c.emitLocked(Utterance{System, "Recording stopped. Processing..."})
	close(c.stopRec)
	c.stopRec = nil
}

// Close stops any recording, discards in-flight results, joins all
// background work and closes the event stream.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.state == Recording {
		c.stopRecordingLocked()
	}
	c.state = Idle
	c.gen++
	c.mu.Unlock()

	c.wg.Wait()
	close(c.inbox)
	<-c.runDone
	close(c.narrQ)
	<-c.narrDone
	close(c.events)
}

// captureSpan owns the capture device and recognizer span for one recording.
// It always reports back over the inbox, success or not.
func (c *Controller) captureSpan(gen uint64, stop <-chan struct{}) {
	defer c.wg.Done()
	text, err := c.runCapture(gen, stop)
	c.inbox <- spanDone{gen: gen, stop: stop, text: text, err: err}
}

func (c *Controller) runCapture(gen uint64, stop <-chan struct{}) (string, error) {
	dev, err := c.actx.NewCapture(c.device, audio.CaptureConfig{
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
	})
	if err != nil {
		return "", fmt.Errorf("opening capture device: %w", err)
	}
	defer dev.Close()

	span, err := c.rec.NewSpan(context.Background())
	if err != nil {
		return "", fmt.Errorf("starting recognition span: %w", err)
	}
	defer span.Close()

	src := audio.NewFrameSource(dev, audio.DefaultQueueDepth)
	if err := src.Start(); err != nil {
		return "", fmt.Errorf("starting capture: %w", err)
	}
	defer src.Stop()

	start := time.Now()
	text := finalizeSpeech(src, span, stop, func(ev silenceEvent) {
		c.inbox <- silenceNote{gen: gen, ev: ev}
	})
	log.Recording(time.Since(start).Seconds(), src.Dropped(), len(text))
	return text, nil
}

// run is the single consumer of completion messages. It exits when the inbox
// closes, after all producers have been joined.
func (c *Controller) run() {
	defer close(c.runDone)
	for msg := range c.inbox {
		switch m := msg.(type) {
		case spanDone:
			c.handleSpanDone(m)
		case turnReady:
			c.handleTurnReady(m)
		case evalReady:
			c.handleEvalReady(m)
		case silenceNote:
			c.handleSilence(m)
		}
	}
}

func (c *Controller) handleSpanDone(m spanDone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.gen != c.gen {
		return
	}
	if m.err != nil {
		log.Errorf("capture failed: %v", m.err)
		// A span that fails slowly can report after its recording was
		// already stopped and another begun; only the live recording's own
		// error may force it off.
		if c.state == Recording && m.stop == c.stopRec {
			c.state = Active
			close(c.stopRec)
			c.stopRec = nil
			c.emitLocked(Utterance{System, "Recording failed. Please try again."})
		}
		return
	}
	if m.text == "" {
		c.emitLocked(Utterance{System, "No voice detected. Try again."})
		return
	}
	c.acceptAnswerLocked(m.text)
}

func (c *Controller) handleTurnReady(m turnReady) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.gen != c.gen {
		return
	}
	if m.err != nil {
		log.Errorf("turn generation failed: %v", m.err)
		c.emitLocked(Utterance{System, "The interviewer could not respond. Please continue."})
		return
	}
	c.emitLocked(Utterance{Interviewer, m.text})
}

func (c *Controller) handleEvalReady(m evalReady) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.err != nil {
		log.Errorf("evaluation failed: %v", m.err)
		c.emitLocked(Utterance{Evaluation, "Evaluation unavailable: the interviewer backend did not respond."})
		return
	}
	c.emitLocked(Utterance{Evaluation, m.text})
}

func (c *Controller) handleSilence(m silenceNote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.gen != c.gen || c.state != Recording {
		return
	}
	switch m.ev {
	case silenceWarn:
		c.emitLocked(Utterance{System, "No voice detected. Keep speaking or stop the recording."})
	case silenceWarnClear:
		log.Info("speech resumed after silence warning")
	}
}

// acceptAnswerLocked records one finalized candidate answer (typed or
// spoken) and kicks off the next interviewer turn.
func (c *Controller) acceptAnswerLocked(answer string) {
	c.answers.Append(answer)
	c.emitLocked(Utterance{Candidate, answer})

	gen := c.gen
	question := c.currentQuestion
	role := c.role
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.turnTimeout)
		defer cancel()
		start := time.Now()
		text, err := c.turnGen.NextTurn(ctx, answer, question, role)
		if err == nil {
			log.Turn(string(role), float64(time.Since(start).Milliseconds()))
		}
		c.inbox <- turnReady{gen: gen, text: text, err: err}
	}()
}

// emitLocked publishes one utterance: transcript log, narration queue and the
// event stream. Interviewer utterances become the current question. Neither
// queue may block the caller; a full one drops the entry with a warning.
func (c *Controller) emitLocked(u Utterance) {
	if u.Speaker == Interviewer {
		c.currentQuestion = u.Text
	}
	log.Utterance(u.Speaker.String(), u.Text)
	select {
	case c.narrQ <- u.Text:
	default:
		log.Warn("narration queue full, skipping playback")
	}
	select {
	case c.events <- u:
	default:
		log.Warn("event queue full, dropping utterance")
	}
}

// narrate plays queued utterances one at a time, in emission order.
func (c *Controller) narrate() {
	defer close(c.narrDone)
	for text := range c.narrQ {
		if err := c.voice.Speak(context.Background(), text); err != nil {
			log.Errorf("narration failed: %v", err)
		}
	}
}
