package ledger

import (
	"testing"
)

func TestLoadCreatesEmptyLedger(t *testing.T) {
	l, err := Load(t.TempDir(), "modern")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if l.CompletedCount() != 0 {
		t.Errorf("new ledger has %d completed ids", l.CompletedCount())
	}
	if got := l.Failed(FailEvent); len(got) != 0 {
		t.Errorf("new ledger has failed events: %v", got)
	}
}

func TestLoadEmptyName(t *testing.T) {
	if _, err := Load(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty dataset name")
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	l, err := Load(dir, "modern")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	l.MarkCompleted("modern-league-2024-05-06")
	l.MarkFailed(FailEvent, "modern-challenge-2024-05-0412599000")
	l.MarkFailed(FailListing, "2024/04")
	l.MarkFailed(FailDead, "modern-league-2024-05-13")
	if err := l.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir, "modern")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !loaded.IsKnown("modern-league-2024-05-06") {
		t.Error("completed id lost")
	}
	if !loaded.IsKnown("modern-league-2024-05-13") {
		t.Error("dead id lost")
	}
	if got := loaded.Failed(FailEvent); len(got) != 1 || got[0] != "modern-challenge-2024-05-0412599000" {
		t.Errorf("failed events lost: %v", got)
	}
	if got := loaded.Failed(FailListing); len(got) != 1 || got[0] != "2024/04" {
		t.Errorf("failed listings lost: %v", got)
	}
}

func TestMarkCompletedClearsFailures(t *testing.T) {
	l, _ := Load(t.TempDir(), "modern")

	id := "modern-challenge-2024-05-0412599000"
	l.MarkFailed(FailEvent, id)
	l.MarkCompleted(id)

	if !l.IsKnown(id) {
		t.Error("completed id not known")
	}
	if got := l.Failed(FailEvent); len(got) != 0 {
		t.Errorf("id still in failed.event after completion: %v", got)
	}
}

func TestMarkDeadClearsRetryableSets(t *testing.T) {
	l, _ := Load(t.TempDir(), "modern")

	id := "modern-league-2024-05-13"
	l.MarkFailed(FailEvent, id)
	l.MarkFailed(FailDead, id)

	if got := l.Failed(FailEvent); len(got) != 0 {
		t.Errorf("dead id still retryable: %v", got)
	}
	if !l.IsKnown(id) {
		t.Error("dead id should be known")
	}
}

func TestMarkFailedOnlyAdds(t *testing.T) {
	l, _ := Load(t.TempDir(), "modern")

	l.MarkFailed(FailEvent, "a")
	l.MarkFailed(FailListing, "2024/05")
	l.MarkFailed(FailEvent, "b")

	if got := l.Failed(FailEvent); len(got) != 2 {
		t.Errorf("failed.event = %v, want two ids", got)
	}
	if got := l.Failed(FailListing); len(got) != 1 {
		t.Errorf("failed.listing = %v, want one id", got)
	}
}

func TestExclusivity(t *testing.T) {
	// After any sequence of mutations, no id is both completed and failed.
	l, _ := Load(t.TempDir(), "modern")

	ids := []string{"a", "b", "c"}
	l.MarkFailed(FailEvent, ids...)
	l.MarkCompleted("a")
	l.MarkFailed(FailDead, "b")
	l.MarkCompleted("b")

	for _, id := range ids[:2] {
		for _, kind := range []FailureKind{FailEvent, FailListing, FailDead} {
			for _, f := range l.Failed(kind) {
				if f == id {
					t.Errorf("id %q is completed but still in failed.%s", id, kind)
				}
			}
		}
	}
	if !l.IsKnown("a") || !l.IsKnown("b") {
		t.Error("completed ids not known")
	}
	if l.IsKnown("c") {
		t.Error("failed id c should not be known")
	}
}

func TestTakeFailed(t *testing.T) {
	l, _ := Load(t.TempDir(), "modern")

	l.MarkFailed(FailEvent, "b", "a", "c")
	got := l.TakeFailed(FailEvent)

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("TakeFailed returned %v, want sorted [a b c]", got)
	}
	if rest := l.Failed(FailEvent); len(rest) != 0 {
		t.Errorf("failed.event not emptied: %v", rest)
	}

	// Ids that fail again are re-added without disturbing the rest.
	l.MarkFailed(FailEvent, "b")
	if rest := l.Failed(FailEvent); len(rest) != 1 || rest[0] != "b" {
		t.Errorf("re-added set = %v, want [b]", rest)
	}
}

func TestIsKnown(t *testing.T) {
	l, _ := Load(t.TempDir(), "modern")

	l.MarkCompleted("done")
	l.MarkFailed(FailDead, "gone")
	l.MarkFailed(FailEvent, "flaky")

	if !l.IsKnown("done") || !l.IsKnown("gone") {
		t.Error("completed and dead ids must be known")
	}
	if l.IsKnown("flaky") {
		t.Error("retryable failures are not known; they must be re-attempted")
	}
	if l.IsKnown("never-seen") {
		t.Error("unknown id reported as known")
	}
}
