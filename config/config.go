package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// LLM backend
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	ChatModel     string        `env:"IVA_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	TurnTimeout   time.Duration `env:"IVA_TURN_TIMEOUT" envDefault:"30s"`

	// Speech recognition
	Recognizer   string `env:"IVA_RECOGNIZER"` // "vosk", "whisper", empty = auto
	VoskURL      string `env:"IVA_VOSK_URL" envDefault:"ws://localhost:2700"`
	WhisperModel string `env:"IVA_WHISPER_MODEL" envDefault:"whisper-1"`

	// Narration
	TTSModel string `env:"IVA_TTS_MODEL" envDefault:"tts-1"`
	TTSVoice string `env:"IVA_TTS_VOICE" envDefault:"alloy"`

	// Session
	Role string `env:"IVA_ROLE" envDefault:"Software Developer"`

	LogPath string `env:"IVA_LOG_PATH"`
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
