package models

import "errors"

var (
	// ErrSessionNotFound covers both unknown ids and sessions that are not in
	// the state the operation requires to even locate its inputs.
	ErrSessionNotFound = errors.New("session not found")

	ErrSampleRateRequired = errors.New("sampleRate is required")
	ErrSessionIdRequired  = errors.New("sessionId is required")
	ErrEmptyChunk         = errors.New("chunk payload missing or empty")

	// ErrFinalizationFailed wraps I/O failures while assembling the WAV
	// container; the session is destroyed when this is returned.
	ErrFinalizationFailed = errors.New("failed to finalize stream")

	ErrNoAudioFile = errors.New("no audio file provided")
)
