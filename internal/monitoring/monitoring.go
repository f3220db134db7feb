package monitoring

import (
	"sort"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Service counts domain events in process and serves them on the metrics
// endpoint.
type Service struct {
	mu      sync.Mutex
	started time.Time
	counts  map[string]int64
	last    map[string]time.Time
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{
		started: time.Now(),
		counts:  map[string]int64{},
		last:    map[string]time.Time{},
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := time.Now()

	s.mu.Lock()
	s.counts[eventName]++
	s.last[eventName] = ts
	s.mu.Unlock()

	nuts.L.Infof("[Monitoring] Event %s recorded at %v with labels: %v", eventName, ts, labels)
}

// EventMetric is one counter in a Snapshot.
type EventMetric struct {
	Event    string    `json:"event"`
	Count    int64     `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// Snapshot is the metrics endpoint body.
type Snapshot struct {
	Version       string        `json:"version"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	Events        []EventMetric `json:"events"`
}

// Snapshot copies the counters, sorted by event name.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]EventMetric, 0, len(s.counts))
	for name, count := range s.counts {
		events = append(events, EventMetric{Event: name, Count: count, LastSeen: s.last[name]})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Event < events[j].Event })

	return Snapshot{
		Version:       nuts.GetVersion(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Events:        events,
	}
}

// GetEventMetrics returns the count of eventType if it was last seen
// within duration.
func (s *Service) GetEventMetrics(eventType string, duration time.Duration) map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]int64{}
	if last, ok := s.last[eventType]; ok && time.Since(last) <= duration {
		out[eventType] = s.counts[eventType]
	}
	return out
}
