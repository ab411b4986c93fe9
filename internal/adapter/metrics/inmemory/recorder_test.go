package inmemory

import (
	"testing"

	"fleurish/internal/domain/gameplay"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordApplied(gameplay.ActionBuyLand)
	r.RecordApplied(gameplay.ActionPlant)
	r.RecordRejected(gameplay.ActionHarvest)
	r.RecordReconciled(gameplay.ActionBuyLand)
	r.RecordUpstreamFailure(gameplay.ActionSell)

	s := r.Snapshot()
	if s.ActionTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.ActionTotal)
	}
	if s.ActionApplied != 2 {
		t.Fatalf("expected applied 2, got %d", s.ActionApplied)
	}
	if s.ActionRejected != 1 {
		t.Fatalf("expected rejected 1, got %d", s.ActionRejected)
	}
	if s.ActionReconciled != 1 {
		t.Fatalf("expected reconciled 1, got %d", s.ActionReconciled)
	}
	if s.UpstreamFailure != 1 {
		t.Fatalf("expected upstream failure 1, got %d", s.UpstreamFailure)
	}
	if s.AppliedByAction[string(gameplay.ActionBuyLand)] != 1 {
		t.Fatalf("expected buy_land count 1")
	}
}
