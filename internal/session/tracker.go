package session

import (
	"sync"
	"time"

	"playstats/internal/models"
	"playstats/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Recorder persists closed sessions. *repository.SessionRepository
// satisfies it.
type Recorder interface {
	Insert(session models.Session) error
}

type activeSession struct {
	hostname  string
	startTime time.Time
}

type hostTotals struct {
	sessions      int64
	totalDuration int64 // seconds
}

// Tracker holds the open session per player and per-hostname running
// duration totals, so average session time never rescans history. A
// single mutex guards both maps; every critical section is a few map
// operations.
type Tracker struct {
	mu     sync.Mutex
	active map[uuid.UUID]activeSession
	totals map[string]*hostTotals

	recorder Recorder
	logger   *logrus.Logger
	now      func() time.Time
}

func NewTracker(recorder Recorder, logger *logrus.Logger) *Tracker {
	return &Tracker{
		active:   make(map[uuid.UUID]activeSession),
		totals:   make(map[string]*hostTotals),
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// LoadHistory seeds the running totals from previously persisted
// sessions so averages cover all history, not just this process's
// lifetime.
func (t *Tracker) LoadHistory(aggregates map[string]repository.HostAggregate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for hostname, agg := range aggregates {
		t.totals[hostname] = &hostTotals{
			sessions:      agg.Sessions,
			totalDuration: agg.TotalDuration,
		}
	}
}

// Start opens a session for a player. A second start before an end is
// treated as an anomalous reconnect: the start time is reset and no
// second open session is created.
func (t *Tracker) Start(playerID uuid.UUID, hostname string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.active[playerID]; ok {
		t.logger.WithFields(logrus.Fields{
			"player_id":     playerID,
			"prev_hostname": prev.hostname,
			"hostname":      hostname,
		}).Warn("Session already open, resetting start time")
	}
	t.active[playerID] = activeSession{hostname: hostname, startTime: t.now().UTC()}
}

// End closes a player's open session, folds its duration into the
// hostname totals and persists the closed record. Ending with no open
// session is a no-op.
func (t *Tracker) End(playerID uuid.UUID, hostname string) error {
	t.mu.Lock()
	open, ok := t.active[playerID]
	if !ok {
		t.mu.Unlock()
		return nil
	}
	delete(t.active, playerID)

	// The hostname recorded at start wins over the one reported at end;
	// they can disagree on proxied reconnects.
	if open.hostname != "" {
		hostname = open.hostname
	}

	endTime := t.now().UTC()
	duration := int64(endTime.Sub(open.startTime) / time.Second)
	if duration < 0 {
		duration = 0
	}

	totals, ok := t.totals[hostname]
	if !ok {
		totals = &hostTotals{}
		t.totals[hostname] = totals
	}
	totals.sessions++
	totals.totalDuration += duration
	t.mu.Unlock()

	record := models.Session{
		PlayerID:  playerID.String(),
		Hostname:  hostname,
		StartTime: open.startTime,
		EndTime:   &endTime,
		Duration:  &duration,
	}
	if err := t.recorder.Insert(record); err != nil {
		t.logger.WithError(err).WithFields(logrus.Fields{
			"player_id": playerID,
			"hostname":  hostname,
		}).Error("Failed to persist closed session")
		return err
	}
	return nil
}

// AverageSessionTime returns the mean closed-session duration in
// seconds for a hostname, 0 when none were recorded.
func (t *Tracker) AverageSessionTime(hostname string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	totals, ok := t.totals[hostname]
	if !ok || totals.sessions == 0 {
		return 0
	}
	return float64(totals.totalDuration) / float64(totals.sessions)
}

// CompareSessionTimes compares the average durations of two hostnames.
// The percentage difference is 0 when the divisor average is 0.
func (t *Tracker) CompareSessionTimes(hostnameA, hostnameB string) models.SessionComparison {
	avgA := t.AverageSessionTime(hostnameA)
	avgB := t.AverageSessionTime(hostnameB)

	cmp := models.SessionComparison{
		AverageA:   avgA,
		AverageB:   avgB,
		Difference: avgA - avgB,
	}
	if avgB > 0 {
		cmp.PercentDiff = (avgA - avgB) / avgB * 100
	}
	return cmp
}

// ActiveCounts snapshots the number of open sessions per hostname.
func (t *Tracker) ActiveCounts() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	counts := make(map[string]int)
	for _, open := range t.active {
		counts[open.hostname]++
	}
	return counts
}
