package registry

import (
	apperrors "Proximity_Search_Microservice/internal/health-registry/errors"
	"Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/pkg/metrics"
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Registry tracks the last heartbeat of every instance. An instance is healthy only
// while its last status is healthy and the heartbeat was received within the freshness
// window; a missing or stale heartbeat always reads as unhealthy. Freshness runs on the
// registry clock, sender timestamps only order an instance's own heartbeats.
type Registry interface {
	ReportHealth(hb model.Heartbeat) (Report, error)
	IsHealthy(instanceID string) bool
	ListHealthy() []string
	Get(instanceID string) (model.InstanceHealthRecord, error)
	List() []model.InstanceHealthRecord
	Prune(olderThan time.Duration) int
}

// Report describes what ReportHealth did with a heartbeat. Previous is the zero time
// and Interval zero for the first heartbeat of an instance. Interval is measured on the
// sender clock when both heartbeats were stamped by the sender, else on the registry clock.
type Report struct {
	Accepted bool
	Previous time.Time
	Interval time.Duration
	Record   model.InstanceHealthRecord
}

type entry struct {
	record model.InstanceHealthRecord
	// reportedAt is the latest sender timestamp, zero until the instance stamps one.
	reportedAt time.Time
	// stamped reports whether record.LastHeartbeat came from the sender.
	stamped bool
}

type records map[string]entry

type registry struct {
	freshness time.Duration
	now       func() time.Time

	// writers serialise on mu and publish a fresh copy; readers only load snapshot.
	mu       sync.Mutex
	snapshot atomic.Pointer[records]
}

func (r *registry) ReportHealth(hb model.Heartbeat) (Report, error) {
	if hb.InstanceID == "" {
		return Report{}, fmt.Errorf("Registry.ReportHealth: %w: missing instance id", apperrors.ErrInvalidHeartbeat)
	}
	if !hb.Status.Valid() {
		return Report{}, fmt.Errorf("Registry.ReportHealth: %w: unknown status %q", apperrors.ErrInvalidHeartbeat, hb.Status)
	}

	now := r.now()
	reported := hb.Timestamp
	if reported.After(now) {
		reported = now
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.snapshot.Load()
	prev, found := current[hb.InstanceID]
	if found && !reported.IsZero() && reported.Before(prev.reportedAt) {
		return Report{
			Accepted: false,
			Previous: prev.record.LastHeartbeat,
			Record:   r.withHealth(prev.record, now),
		}, nil
	}

	ts := reported
	if ts.IsZero() {
		ts = now
	}
	next := entry{
		record: model.InstanceHealthRecord{
			InstanceID:    hb.InstanceID,
			Address:       hb.Address,
			Status:        hb.Status,
			LastHeartbeat: ts,
			ReceivedAt:    now,
			Diagnostics:   maps.Clone(hb.Diagnostics),
		},
		reportedAt: reported,
		stamped:    !reported.IsZero(),
	}
	if found {
		if next.record.Address == "" {
			next.record.Address = prev.record.Address
		}
		if next.reportedAt.IsZero() {
			next.reportedAt = prev.reportedAt
		}
	}

	updated := maps.Clone(current)
	updated[hb.InstanceID] = next
	r.snapshot.Store(&updated)

	report := Report{
		Accepted: true,
		Record:   r.withHealth(next.record, now),
	}
	if found {
		report.Previous = prev.record.LastHeartbeat
		if next.stamped && prev.stamped {
			report.Interval = reported.Sub(prev.record.LastHeartbeat)
		} else {
			report.Interval = now.Sub(prev.record.ReceivedAt)
		}
	}
	return report, nil
}

func (r *registry) IsHealthy(instanceID string) bool {
	e, found := (*r.snapshot.Load())[instanceID]
	return found && r.healthy(e.record, r.now())
}

// ListHealthy returns the ids of healthy instances in ascending order.
func (r *registry) ListHealthy() []string {
	now := r.now()
	ids := make([]string, 0)
	for id, e := range *r.snapshot.Load() {
		if r.healthy(e.record, now) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	metrics.SetHealthyInstances(len(ids))
	return ids
}

func (r *registry) Get(instanceID string) (model.InstanceHealthRecord, error) {
	e, found := (*r.snapshot.Load())[instanceID]
	if !found {
		return model.InstanceHealthRecord{}, fmt.Errorf("Registry.Get: %w", apperrors.ErrInstanceNotFound)
	}
	return r.withHealth(e.record, r.now()), nil
}

func (r *registry) List() []model.InstanceHealthRecord {
	now := r.now()
	snapshot := *r.snapshot.Load()
	out := make([]model.InstanceHealthRecord, 0, len(snapshot))
	for _, e := range snapshot {
		out = append(out, r.withHealth(e.record, now))
	}
	slices.SortFunc(out, func(a, b model.InstanceHealthRecord) int {
		return cmp.Compare(a.InstanceID, b.InstanceID)
	})
	return out
}

// Prune drops instances not heard from for longer than olderThan and returns how many
// were removed.
func (r *registry) Prune(olderThan time.Duration) int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.snapshot.Load()
	next := make(records, len(current))
	for id, e := range current {
		if now.Sub(e.record.ReceivedAt) <= olderThan {
			next[id] = e
		}
	}
	removed := len(current) - len(next)
	if removed > 0 {
		r.snapshot.Store(&next)
	}
	return removed
}

func (r *registry) healthy(record model.InstanceHealthRecord, now time.Time) bool {
	return record.Status == model.StatusHealthy && now.Sub(record.ReceivedAt) <= r.freshness
}

func (r *registry) withHealth(record model.InstanceHealthRecord, now time.Time) model.InstanceHealthRecord {
	record.Healthy = r.healthy(record, now)
	return record
}

func NewRegistry(freshness time.Duration) Registry {
	return newRegistry(freshness, time.Now)
}

func newRegistry(freshness time.Duration, now func() time.Time) *registry {
	r := &registry{
		freshness: freshness,
		now:       now,
	}
	empty := make(records)
	r.snapshot.Store(&empty)
	return r
}
