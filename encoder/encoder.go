package encoder

// BlockSize is the number of samples handed to the codec per frame.
const BlockSize = 4096

// Encoder compresses PCM16 blocks into an upload-ready byte stream.
type Encoder interface {
	EncodeBlock(block []int16) error
	Close() error
	Bytes() []byte
	TotalFrames() uint64
}
