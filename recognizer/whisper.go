package recognizer

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"iva/encoder"
)

// Whisper is a batch recognizer: it buffers the whole recording, FLAC-encodes
// it, and transcribes in one request at flush time. Accept therefore never
// reports a final fragment; all text arrives from Flush.
type Whisper struct {
	client *openai.Client
	model  string
}

func NewWhisper(apiKey, model string) *Whisper {
	if model == "" {
		model = openai.Whisper1
	}
	return &Whisper{client: openai.NewClient(apiKey), model: model}
}

func (w *Whisper) Name() string { return "whisper" }

func (w *Whisper) NewSpan(ctx context.Context) (Span, error) {
	enc, err := encoder.NewFlac()
	if err != nil {
		return nil, err
	}
	return &whisperSpan{
		client: w.client,
		model:  w.model,
		ctx:    ctx,
		enc:    enc,
	}, nil
}

type whisperSpan struct {
	client *openai.Client
	model  string
	ctx    context.Context
	enc    encoder.Encoder

	sampleBuf []int16
	closed    bool
}

func (s *whisperSpan) Accept(pcm []byte) (Result, error) {
	for i := 0; i+1 < len(pcm); i += 2 {
		s.sampleBuf = append(s.sampleBuf, int16(binary.LittleEndian.Uint16(pcm[i:])))
	}
	for len(s.sampleBuf) >= encoder.BlockSize {
		block := s.sampleBuf[:encoder.BlockSize]
		s.sampleBuf = s.sampleBuf[encoder.BlockSize:]
		if err := s.enc.EncodeBlock(block); err != nil {
			return Result{}, err
		}
	}
	return Result{}, nil
}

func (s *whisperSpan) Flush() (string, error) {
	if len(s.sampleBuf) > 0 {
		if err := s.enc.EncodeBlock(s.sampleBuf); err != nil {
			return "", err
		}
		s.sampleBuf = nil
	}
	if err := s.enc.Close(); err != nil {
		return "", fmt.Errorf("closing flac stream: %w", err)
	}
	s.closed = true

	if s.enc.TotalFrames() == 0 {
		return "", nil
	}

	resp, err := s.client.CreateTranscription(s.ctx, openai.AudioRequest{
		Model:    s.model,
		FilePath: "recording.flac",
		Reader:   bytes.NewReader(s.enc.Bytes()),
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (s *whisperSpan) Close() error {
	if !s.closed {
		s.closed = true
		return s.enc.Close()
	}
	return nil
}
