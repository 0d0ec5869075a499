// Package speaker plays mono PCM16 audio through the default output device
// and blocks until playback drains.
package speaker
