package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const headerSize = 44

// WAVHeader is the fixed 44-byte RIFF/WAVE header for PCM audio.
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + data length
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // data length in bytes
}

// BuildWAV frames raw little-endian 16-bit mono PCM bytes into a playable
// WAV container. An empty input produces a valid container with a zero-length
// data chunk.
func BuildWAV(pcm []byte, sampleRate uint32) []byte {
	const numChannels = 1
	const bitsPerSample = 16
	dataLen := uint32(len(pcm))

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataLen,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   numChannels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * numChannels * bitsPerSample / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataLen,
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(pcm)))
	// writing a fixed-layout struct to an in-memory buffer cannot fail
	_ = binary.Write(buf, binary.LittleEndian, header)
	buf.Write(pcm)
	return buf.Bytes()
}

// ParseWAVHeader reads back the header of a WAV container and validates the
// format markers.
func ParseWAVHeader(data []byte) (*WAVHeader, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("wav data too short: need at least %d bytes, got %d", headerSize, len(data))
	}

	var header WAVHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read wav header: %w", err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return nil, fmt.Errorf("invalid wav file: missing RIFF header")
	}
	if string(header.Format[:]) != "WAVE" {
		return nil, fmt.Errorf("invalid wav file: missing WAVE format")
	}
	if string(header.Subchunk1ID[:]) != "fmt " {
		return nil, fmt.Errorf("invalid wav file: missing fmt chunk")
	}
	if string(header.Subchunk2ID[:]) != "data" {
		return nil, fmt.Errorf("invalid wav file: missing data chunk")
	}

	return &header, nil
}
