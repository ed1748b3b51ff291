package sessionstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionStore is the process-wide registry of streaming sessions. It owns
// the upload directory where every session's temp files live.
type SessionStore struct {
	dir    string
	logger *logrus.Entry

	mu       sync.RWMutex
	sessions map[string]*Session
}

func New(dir string, logger *logrus.Logger) *SessionStore {
	return &SessionStore{
		dir:      dir,
		logger:   logger.WithField("service", "sessionstore"),
		sessions: make(map[string]*Session),
	}
}

// Create registers a new collecting session with an empty backing file.
func (st *SessionStore) Create(sampleRate int, sourceLang, targetLang string) (*Session, error) {
	id := uuid.NewString()
	rawPath := filepath.Join(st.dir, id+".pcm")

	if err := os.WriteFile(rawPath, nil, 0644); err != nil {
		return nil, fmt.Errorf("failed to create raw audio file: %w", err)
	}

	now := time.Now()
	sess := &Session{
		ID:             id,
		SampleRate:     sampleRate,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		RawAudioPath:   rawPath,
		CreatedAt:      now,
		status:         StatusCollecting,
		lastActivity:   now,
	}

	st.mu.Lock()
	st.sessions[id] = sess
	st.mu.Unlock()

	return sess, nil
}

// Get returns the session for the given id, or nil when unknown.
func (st *SessionStore) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Destroy unregisters the session and deletes its temp files. It is safe to
// call for ids that were already destroyed.
func (st *SessionStore) Destroy(id string) {
	st.mu.Lock()
	sess := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if sess == nil {
		return
	}
	sess.removeFiles()
	st.logger.Infof("cleaned up session: %s", id)
}

// Snapshot returns the currently registered sessions.
func (st *SessionStore) Snapshot() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	return out
}

// Len reports the number of registered sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
