package models

import (
	"sync"
	"time"

	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/services/sessionstore"
	"github.com/sirupsen/logrus"
)

// JanitorModel guarantees no leaked temp files: it destroys sessions after a
// grace delay once their audio was retrieved, immediately on terminal errors,
// and sweeps sessions that went idle without ever finishing.
type JanitorModel struct {
	app    *config.AppConfig
	store  *sessionstore.SessionStore
	logger *logrus.Entry

	// now is swappable so tests can simulate the passage of time.
	now func() time.Time

	mu        sync.Mutex
	deadlines map[string]time.Time

	closeTicker chan bool
}

func NewJanitorModel(app *config.AppConfig, store *sessionstore.SessionStore, logger *logrus.Logger) *JanitorModel {
	if app == nil {
		app = config.GetConfig()
	}
	return &JanitorModel{
		app:         app,
		store:       store,
		logger:      logger.WithField("model", "janitor"),
		now:         time.Now,
		deadlines:   make(map[string]time.Time),
		closeTicker: make(chan bool),
	}
}

// ScheduleCleanup marks the session for deletion after the configured grace
// delay, tolerating immediate re-reads of the retrieved audio.
func (m *JanitorModel) ScheduleCleanup(sessionId string) {
	deadline := m.now().Add(m.app.SessionSettings.CleanupGraceDelay)
	m.mu.Lock()
	m.deadlines[sessionId] = deadline
	m.mu.Unlock()
}

// CleanupNow destroys the session synchronously.
func (m *JanitorModel) CleanupNow(sessionId string) {
	m.mu.Lock()
	delete(m.deadlines, sessionId)
	m.mu.Unlock()
	m.store.Destroy(sessionId)
}

// StartJanitor runs the sweep loop until Shutdown is called.
func (m *JanitorModel) StartJanitor() {
	graceChecker := time.NewTicker(250 * time.Millisecond)
	defer graceChecker.Stop()

	idleChecker := time.NewTicker(time.Minute)
	defer idleChecker.Stop()

	for {
		select {
		case <-m.closeTicker:
			return
		case <-graceChecker.C:
			m.sweepScheduled()
		case <-idleChecker.C:
			m.sweepIdle()
		}
	}
}

func (m *JanitorModel) Shutdown() {
	m.closeTicker <- true
}

// sweepScheduled destroys sessions whose grace delay has expired.
func (m *JanitorModel) sweepScheduled() {
	now := m.now()

	m.mu.Lock()
	var expired []string
	for id, deadline := range m.deadlines {
		if !deadline.After(now) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(m.deadlines, id)
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.store.Destroy(id)
	}
}

// sweepIdle reclaims sessions that were abandoned: never finalized, never
// subscribed to, or never retrieved.
func (m *JanitorModel) sweepIdle() {
	now := m.now()
	timeout := m.app.SessionSettings.IdleTimeout

	for _, sess := range m.store.Snapshot() {
		if now.Sub(sess.LastActivity()) > timeout {
			m.logger.Infof("reclaiming idle session: %s (status: %s)", sess.ID, sess.Status())
			m.CleanupNow(sess.ID)
		}
	}
}
