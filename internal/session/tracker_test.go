package session

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstats/internal/models"
	"playstats/internal/repository"
)

type recorderStub struct {
	mu       sync.Mutex
	sessions []models.Session
	err      error
}

func (r *recorderStub) Insert(session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sessions = append(r.sessions, session)
	return nil
}

func newTestTracker(recorder *recorderStub) *Tracker {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewTracker(recorder, log)
}

func TestTracker_StartEnd_PersistsClosedSession(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return start }

	playerID := uuid.New()
	tracker.Start(playerID, "play.example.com")

	tracker.now = func() time.Time { return start.Add(90 * time.Second) }
	require.NoError(t, tracker.End(playerID, "play.example.com"))

	require.Len(t, recorder.sessions, 1)
	session := recorder.sessions[0]
	assert.Equal(t, playerID.String(), session.PlayerID)
	assert.Equal(t, "play.example.com", session.Hostname)
	require.NotNil(t, session.EndTime)
	require.NotNil(t, session.Duration)
	assert.Equal(t, int64(90), *session.Duration)
	assert.GreaterOrEqual(t, *session.Duration, int64(0))
	assert.Equal(t, session.EndTime.Sub(session.StartTime), time.Duration(*session.Duration)*time.Second)
}

func TestTracker_End_NoOpenSession_IsNoOp(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)

	err := tracker.End(uuid.New(), "play.example.com")
	assert.NoError(t, err)
	assert.Empty(t, recorder.sessions)
}

func TestTracker_DoubleStart_ResetsWithoutSecondOpenSession(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	playerID := uuid.New()

	tracker.now = func() time.Time { return start }
	tracker.Start(playerID, "a")

	// Anomalous reconnect: second start replaces the first.
	tracker.now = func() time.Time { return start.Add(60 * time.Second) }
	tracker.Start(playerID, "a")

	tracker.now = func() time.Time { return start.Add(100 * time.Second) }
	require.NoError(t, tracker.End(playerID, "a"))

	// Only one closed session, clocked from the second start.
	require.Len(t, recorder.sessions, 1)
	assert.Equal(t, int64(40), *recorder.sessions[0].Duration)

	// Nothing left open.
	assert.NoError(t, tracker.End(playerID, "a"))
	require.Len(t, recorder.sessions, 1)
}

func TestTracker_AverageSessionTime(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, duration := range []time.Duration{10 * time.Second, 30 * time.Second} {
		playerID := uuid.New()
		tracker.now = func() time.Time { return start }
		tracker.Start(playerID, "a")
		end := start.Add(duration)
		tracker.now = func() time.Time { return end }
		require.NoError(t, tracker.End(playerID, "a"))
	}

	assert.Equal(t, 20.0, tracker.AverageSessionTime("a"))
	assert.Equal(t, 0.0, tracker.AverageSessionTime("unknown"))
}

func TestTracker_CompareSessionTimes(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)
	tracker.LoadHistory(map[string]repository.HostAggregate{
		"a": {Hostname: "a", Sessions: 2, TotalDuration: 60},
		"b": {Hostname: "b", Sessions: 4, TotalDuration: 60},
	})

	cmp := tracker.CompareSessionTimes("a", "b")
	assert.Equal(t, 30.0, cmp.AverageA)
	assert.Equal(t, 15.0, cmp.AverageB)
	assert.Equal(t, 15.0, cmp.Difference)
	assert.Equal(t, 100.0, cmp.PercentDiff)

	// Divisor average of 0 yields 0, not a division error.
	cmp = tracker.CompareSessionTimes("a", "empty")
	assert.Equal(t, 0.0, cmp.PercentDiff)
	assert.Equal(t, 30.0, cmp.Difference)
}

func TestTracker_LoadHistory_SeedsAverages(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)

	tracker.LoadHistory(map[string]repository.HostAggregate{
		"a": {Hostname: "a", Sessions: 3, TotalDuration: 90},
	})
	assert.Equal(t, 30.0, tracker.AverageSessionTime("a"))

	// New sessions fold into the seeded totals.
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	playerID := uuid.New()
	tracker.now = func() time.Time { return start }
	tracker.Start(playerID, "a")
	tracker.now = func() time.Time { return start.Add(10 * time.Second) }
	require.NoError(t, tracker.End(playerID, "a"))

	assert.Equal(t, 25.0, tracker.AverageSessionTime("a"))
}

func TestTracker_ActiveCounts(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)

	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	tracker.Start(p1, "a")
	tracker.Start(p2, "a")
	tracker.Start(p3, "b")

	counts := tracker.ActiveCounts()
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, counts)

	require.NoError(t, tracker.End(p1, "a"))
	counts = tracker.ActiveCounts()
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, counts)
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	recorder := &recorderStub{}
	tracker := newTestTracker(recorder)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			playerID := uuid.New()
			tracker.Start(playerID, "a")
			tracker.ActiveCounts()
			tracker.AverageSessionTime("a")
			_ = tracker.End(playerID, "a")
		}()
	}
	wg.Wait()

	assert.Empty(t, tracker.ActiveCounts())
	assert.Len(t, recorder.sessions, 50)
}
