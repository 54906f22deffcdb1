package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ReadWAV decodes a PCM WAV file into 16-bit signed little-endian mono
// samples, returning the file's sample rate alongside the raw payload.
func ReadWAV(path string) (int, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return 0, nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf.Format == nil {
		return 0, nil, errors.New("wav missing format chunk")
	}
	if buf.Format.NumChannels != 1 {
		return 0, nil, fmt.Errorf("expected mono audio, got %d channels", buf.Format.NumChannels)
	}

	pcm := make([]byte, len(buf.Data)*2)
	for i, sample := range buf.Data {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(sample)))
	}
	return buf.Format.SampleRate, pcm, nil
}
