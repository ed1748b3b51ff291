package models

import (
	"testing"
	"time"
)

func TestScheduleCleanupRespectsGraceDelay(t *testing.T) {
	appCnf := newTestConfig(t)
	appCnf.SessionSettings.CleanupGraceDelay = time.Second
	store := newTestStore(t, appCnf)
	janitor := NewJanitorModel(appCnf, store, appCnf.Logger)

	base := time.Now()
	janitor.now = func() time.Time { return base }

	sess, _ := store.Create(16000, "en-US", "es-ES")
	janitor.ScheduleCleanup(sess.ID)

	// before the deadline nothing happens
	janitor.sweepScheduled()
	if store.Get(sess.ID) == nil {
		t.Fatal("session deleted before the grace delay expired")
	}

	janitor.now = func() time.Time { return base.Add(2 * time.Second) }
	janitor.sweepScheduled()
	if store.Get(sess.ID) != nil {
		t.Fatal("session still registered after the grace delay")
	}
}

func TestCleanupNow(t *testing.T) {
	appCnf := newTestConfig(t)
	store := newTestStore(t, appCnf)
	janitor := NewJanitorModel(appCnf, store, appCnf.Logger)

	sess, _ := store.Create(16000, "en-US", "es-ES")
	janitor.ScheduleCleanup(sess.ID)
	janitor.CleanupNow(sess.ID)

	if store.Get(sess.ID) != nil {
		t.Fatal("expected immediate deletion")
	}

	// the dropped deadline must not resurrect anything
	janitor.now = func() time.Time { return time.Now().Add(time.Hour) }
	janitor.sweepScheduled()
}

func TestIdleSweep(t *testing.T) {
	appCnf := newTestConfig(t)
	appCnf.SessionSettings.IdleTimeout = 200 * time.Millisecond
	store := newTestStore(t, appCnf)
	janitor := NewJanitorModel(appCnf, store, appCnf.Logger)

	stale, _ := store.Create(16000, "en-US", "es-ES")
	fresh, _ := store.Create(16000, "en-US", "es-ES")

	time.Sleep(300 * time.Millisecond)
	// keep fresh alive by touching it after the timeout elapsed
	if _, err := fresh.AppendPCM([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("AppendPCM failed: %v", err)
	}

	janitor.sweepIdle()

	if store.Get(stale.ID) != nil {
		t.Error("expected stale session to be reclaimed")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected active session to survive the sweep")
	}
}

func TestJanitorLoopLifecycle(t *testing.T) {
	appCnf := newTestConfig(t)
	appCnf.SessionSettings.CleanupGraceDelay = 10 * time.Millisecond
	store := newTestStore(t, appCnf)
	janitor := NewJanitorModel(appCnf, store, appCnf.Logger)

	done := make(chan struct{})
	go func() {
		janitor.StartJanitor()
		close(done)
	}()
	// give the loop a moment to install its tickers
	time.Sleep(50 * time.Millisecond)

	sess, _ := store.Create(16000, "en-US", "es-ES")
	janitor.ScheduleCleanup(sess.ID)

	deadline := time.After(3 * time.Second)
	for store.Get(sess.ID) != nil {
		select {
		case <-deadline:
			t.Fatal("janitor loop never cleaned up the session")
		case <-time.After(50 * time.Millisecond):
		}
	}

	janitor.Shutdown()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor loop did not stop on shutdown")
	}
}
