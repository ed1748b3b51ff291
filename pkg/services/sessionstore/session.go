package sessionstore

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mahmood265/speech-translator/pkg/audio"
)

type SessionStatus string

const (
	StatusCollecting SessionStatus = "collecting"
	StatusReady      SessionStatus = "ready"
	StatusError      SessionStatus = "error"
)

var (
	ErrNotCollecting    = errors.New("session is no longer accepting audio")
	ErrAlreadyFinalized = errors.New("session was already finalized")
)

// Session tracks one client's in-progress or completed audio capture and its
// translation artifacts. The raw PCM file is owned exclusively by the session.
type Session struct {
	ID             string
	SampleRate     int
	SourceLanguage string
	TargetLanguage string
	RawAudioPath   string
	CreatedAt      time.Time

	// mu serializes status transitions, file writes and artifact updates.
	mu                 sync.Mutex
	status             SessionStatus
	finalizedAudioPath string
	totalSamples       int64
	lastActivity       time.Time

	recognizedText   string
	translatedText   string
	synthesizedAudio string // base64
}

// AppendPCM appends raw PCM bytes to the backing file and advances the
// sample counter. Only valid while the session is collecting.
func (s *Session) AppendPCM(chunk []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusCollecting {
		return s.totalSamples, ErrNotCollecting
	}

	f, err := os.OpenFile(s.RawAudioPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return s.totalSamples, fmt.Errorf("failed to open raw audio file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(chunk); err != nil {
		return s.totalSamples, fmt.Errorf("failed to append chunk: %w", err)
	}

	s.totalSamples += int64(len(chunk)) / 2 // int16 samples
	s.lastActivity = time.Now()
	return s.totalSamples, nil
}

// Finalize assembles the accumulated PCM into a WAV container next to the raw
// file and moves the session to ready. A second call is rejected. Appends are
// blocked for the duration, so the container always covers every chunk.
func (s *Session) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusReady {
		return ErrAlreadyFinalized
	}
	if s.status != StatusCollecting {
		return ErrNotCollecting
	}

	pcm, err := os.ReadFile(s.RawAudioPath)
	if err != nil {
		s.status = StatusError
		return fmt.Errorf("failed to read raw audio: %w", err)
	}

	wavPath := s.RawAudioPath[:len(s.RawAudioPath)-len(".pcm")] + ".wav"
	if err := os.WriteFile(wavPath, audio.BuildWAV(pcm, uint32(s.SampleRate)), 0644); err != nil {
		s.status = StatusError
		return fmt.Errorf("failed to write wav file: %w", err)
	}

	s.finalizedAudioPath = wavPath
	s.status = StatusReady
	s.lastActivity = time.Now()
	return nil
}

// SetArtifacts stores the terminal translation results on the session.
func (s *Session) SetArtifacts(synthesizedAudio, recognizedText, translatedText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synthesizedAudio = synthesizedAudio
	s.recognizedText = recognizedText
	s.translatedText = translatedText
	s.lastActivity = time.Now()
}

func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) FinalizedAudioPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalizedAudioPath
}

func (s *Session) TotalSamples() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSamples
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Artifacts returns the stored results. The boolean reports whether
// synthesized audio is available yet.
func (s *Session) Artifacts() (synthesizedAudio, recognizedText, translatedText string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.synthesizedAudio, s.recognizedText, s.translatedText, s.synthesizedAudio != ""
}

// removeFiles deletes the temp files backing this session.
func (s *Session) removeFiles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.RawAudioPath)
	if s.finalizedAudioPath != "" {
		_ = os.Remove(s.finalizedAudioPath)
	}
}
