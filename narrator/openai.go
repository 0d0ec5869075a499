package narrator

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"iva/speaker"
)

// The speech endpoint's raw PCM output is 24 kHz mono PCM16.
const ttsSampleRate = 24000

type OpenAI struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

func NewOpenAI(apiKey, model, voice string) *OpenAI {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
	}
}

func (o *OpenAI) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return fmt.Errorf("speech synthesis: %w", err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return fmt.Errorf("reading speech audio: %w", err)
	}
	return speaker.Play(pcm, ttsSampleRate)
}
