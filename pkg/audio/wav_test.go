package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBuildWAVHeaderFields(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	wav := BuildWAV(pcm, 16000)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", 44+len(pcm), len(wav))
	}

	if string(wav[0:4]) != "RIFF" {
		t.Errorf("missing RIFF marker")
	}
	if string(wav[8:12]) != "WAVE" {
		t.Errorf("missing WAVE marker")
	}

	riffSize := binary.LittleEndian.Uint32(wav[4:8])
	if riffSize != uint32(36+len(pcm)) {
		t.Errorf("expected riff size %d, got %d", 36+len(pcm), riffSize)
	}

	if format := binary.LittleEndian.Uint16(wav[20:22]); format != 1 {
		t.Errorf("expected PCM format 1, got %d", format)
	}
	if channels := binary.LittleEndian.Uint16(wav[22:24]); channels != 1 {
		t.Errorf("expected 1 channel, got %d", channels)
	}
	if sampleRate := binary.LittleEndian.Uint32(wav[24:28]); sampleRate != 16000 {
		t.Errorf("expected sample rate 16000, got %d", sampleRate)
	}
	if byteRate := binary.LittleEndian.Uint32(wav[28:32]); byteRate != 32000 {
		t.Errorf("expected byte rate 32000, got %d", byteRate)
	}
	if blockAlign := binary.LittleEndian.Uint16(wav[32:34]); blockAlign != 2 {
		t.Errorf("expected block align 2, got %d", blockAlign)
	}
	if bits := binary.LittleEndian.Uint16(wav[34:36]); bits != 16 {
		t.Errorf("expected 16 bits per sample, got %d", bits)
	}

	dataLen := binary.LittleEndian.Uint32(wav[40:44])
	if dataLen != uint32(len(pcm)) {
		t.Errorf("expected data length %d, got %d", len(pcm), dataLen)
	}
}

func TestBuildWAVRoundTrip(t *testing.T) {
	pcm := make([]byte, 1024)
	for i := range pcm {
		pcm[i] = byte(i % 251)
	}

	wav := BuildWAV(pcm, 44100)
	if !bytes.Equal(wav[44:], pcm) {
		t.Fatal("stripping the header did not recover the original pcm bytes")
	}
}

func TestBuildWAVOneSecondOfSilence(t *testing.T) {
	// 1 second at 16000 Hz, 16-bit mono
	pcm := make([]byte, 32000)
	wav := BuildWAV(pcm, 16000)

	if len(wav) != 32044 {
		t.Fatalf("expected 32044 bytes, got %d", len(wav))
	}
}

func TestBuildWAVEmptyData(t *testing.T) {
	wav := BuildWAV(nil, 16000)

	if len(wav) != 44 {
		t.Fatalf("expected header-only container of 44 bytes, got %d", len(wav))
	}
	if dataLen := binary.LittleEndian.Uint32(wav[40:44]); dataLen != 0 {
		t.Errorf("expected data length 0, got %d", dataLen)
	}

	header, err := ParseWAVHeader(wav)
	if err != nil {
		t.Fatalf("empty container should still be valid: %v", err)
	}
	if header.Subchunk2Size != 0 {
		t.Errorf("expected empty data chunk, got %d", header.Subchunk2Size)
	}
}

func TestParseWAVHeader(t *testing.T) {
	wav := BuildWAV(make([]byte, 320), 8000)

	header, err := ParseWAVHeader(wav)
	if err != nil {
		t.Fatalf("ParseWAVHeader failed: %v", err)
	}
	if header.SampleRate != 8000 {
		t.Errorf("expected sample rate 8000, got %d", header.SampleRate)
	}
	if header.Subchunk2Size != 320 {
		t.Errorf("expected data length 320, got %d", header.Subchunk2Size)
	}

	if _, err := ParseWAVHeader([]byte("too short")); err == nil {
		t.Error("expected error for truncated data")
	}

	bad := BuildWAV(nil, 8000)
	copy(bad[0:4], "JUNK")
	if _, err := ParseWAVHeader(bad); err == nil {
		t.Error("expected error for invalid RIFF marker")
	}
}
