// Package log writes two files under the log directory: a zerolog-formatted
// diagnostics log and a plain interview transcript. All functions are no-ops
// until Init succeeds, so callers never guard their log statements.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog        zerolog.Logger
	diagFile       *os.File
	transcriptFile *os.File
	logMu          sync.Mutex
	logReady       bool
	pid            int
	dir            string
)

// ResolveDir picks the log directory: an explicit flag path, then the
// IVA_LOG_PATH environment variable, then the OS cache directory.
func ResolveDir(flagPath string) (string, error) {
	pick := flagPath
	if pick == "" {
		pick = os.Getenv("IVA_LOG_PATH")
	}
	if pick != "" {
		if !filepath.IsAbs(pick) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, pick), nil
		}
		return pick, nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "iva"), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	transcriptPath := filepath.Join(dir, "interview_log.txt")
	transcriptFile, err = os.OpenFile(transcriptPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if transcriptFile != nil {
		transcriptFile.Close()
		transcriptFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// Utterance appends one line of the interview transcript.
func Utterance(speaker, text string) {
	if !logReady {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	line := fmt.Sprintf("%s\t[%d]\t%s: %s\n", time.Now().Format("2006-01-02 15:04:05"), pid, speaker, text)
	transcriptFile.WriteString(line)
}

// Turn records one generated interviewer turn.
func Turn(role string, totalMs float64) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("role", role).
		Float64("total_ms", totalMs).
		Msg("turn")
}

// Recording records one finalized recording span.
func Recording(audioS float64, droppedFrames uint64, chars int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Float64("audio_s", audioS).
		Uint64("dropped_frames", droppedFrames).
		Int("chars", chars).
		Msg("recording")
}

func SessionStart(recognizer, role string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("recognizer", recognizer).
		Str("role", role).
		Msg("session_start")
}

func SessionEnd(answers int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("answers", answers).
		Msg("session_end")
}
