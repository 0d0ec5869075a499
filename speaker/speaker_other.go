//go:build !linux

package speaker

import (
	"github.com/gen2brain/malgo"
)

// Play writes one mono PCM16 buffer to the default output device and returns
// after the last sample has been delivered.
func Play(pcm []byte, sampleRate int) error {
	if len(pcm) < 2 {
		return nil
	}
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return err
	}
	defer func() {
		ctx.Uninit()
		ctx.Free()
	}()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)

	done := make(chan struct{})
	pos := 0
	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frameCount uint32) {
			n := copy(out, pcm[pos:])
			pos += n
			if pos >= len(pcm) {
				select {
				case <-done:
				default:
					close(done)
				}
			}
		},
	}

	dev, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return err
	}
	defer dev.Uninit()

	if err := dev.Start(); err != nil {
		return err
	}
	<-done
	dev.Stop()
	return nil
}
