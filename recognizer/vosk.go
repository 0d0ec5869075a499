package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"iva/audio"
)

// Vosk talks to a vosk-server over its websocket protocol: binary PCM in,
// one JSON message out per buffer — {"partial": ...} while an utterance is in
// progress, {"text": ...} when a boundary is reached. Responses are decoded
// structurally; they are never treated as anything but data.
type Vosk struct {
	url string
}

func NewVosk(url string) *Vosk {
	return &Vosk{url: url}
}

func (v *Vosk) Name() string { return "vosk" }

func (v *Vosk) NewSpan(ctx context.Context) (Span, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, v.url, nil)
	if err != nil {
		return nil, fmt.Errorf("vosk dial %s: %w", v.url, err)
	}

	cfg := fmt.Sprintf(`{"config": {"sample_rate": %d}}`, audio.SampleRate)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(cfg)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("vosk config: %w", err)
	}

	return &voskSpan{conn: conn}, nil
}

type voskMessage struct {
	Text    *string `json:"text"`
	Partial *string `json:"partial"`
}

func decodeVoskMessage(data []byte) (Result, error) {
	var msg voskMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Result{}, fmt.Errorf("vosk response parse: %w", err)
	}
	if msg.Text != nil {
		return Result{Text: strings.TrimSpace(*msg.Text), Final: true}, nil
	}
	return Result{}, nil
}

type voskSpan struct {
	conn    *websocket.Conn
	flushed bool
}

func (s *voskSpan) Accept(pcm []byte) (Result, error) {
	if s.flushed {
		return Result{}, fmt.Errorf("vosk span fed after flush")
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, pcm); err != nil {
		return Result{}, fmt.Errorf("vosk send: %w", err)
	}
	// The server answers every audio message in lockstep.
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return Result{}, fmt.Errorf("vosk recv: %w", err)
	}
	return decodeVoskMessage(data)
}

func (s *voskSpan) Flush() (string, error) {
	s.flushed = true
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(`{"eof" : 1}`)); err != nil {
		return "", fmt.Errorf("vosk eof: %w", err)
	}
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("vosk final recv: %w", err)
	}
	res, err := decodeVoskMessage(data)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (s *voskSpan) Close() error {
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}
