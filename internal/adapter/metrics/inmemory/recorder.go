package inmemory

import (
	"sync"

	"fleurish/internal/domain/gameplay"
)

type Snapshot struct {
	ActionTotal      uint64            `json:"action_total"`
	ActionApplied    uint64            `json:"action_applied"`
	ActionRejected   uint64            `json:"action_rejected"`
	ActionReconciled uint64            `json:"action_reconciled"`
	UpstreamFailure  uint64            `json:"upstream_failure"`
	AppliedByAction  map[string]uint64 `json:"applied_by_action"`
}

type Recorder struct {
	mu         sync.Mutex
	applied    uint64
	rejected   uint64
	reconciled uint64
	failure    uint64
	byAction   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[string]uint64{},
	}
}

func (r *Recorder) RecordApplied(action gameplay.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied++
	r.byAction[string(action)]++
}

func (r *Recorder) RecordRejected(gameplay.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

// RecordReconciled counts balance overwrites from server truth; it does not
// add to the action total.
func (r *Recorder) RecordReconciled(gameplay.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reconciled++
}

func (r *Recorder) RecordUpstreamFailure(gameplay.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionApplied:    r.applied,
		ActionRejected:   r.rejected,
		ActionReconciled: r.reconciled,
		UpstreamFailure:  r.failure,
		ActionTotal:      r.applied + r.rejected + r.failure,
		AppliedByAction:  make(map[string]uint64, len(r.byAction)),
	}
	for k, v := range r.byAction {
		out.AppliedByAction[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
