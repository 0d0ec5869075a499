package session

import "testing"

func TestLedgerAppendOrder(t *testing.T) {
	var l ledger
	l.Append("first")
	l.Append("second")
	l.Append("third")

	got := l.Snapshot()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d answers, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("answer %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestLedgerReset(t *testing.T) {
	var l ledger
	l.Append("stale")
	l.Reset()
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger after reset, got %d answers", l.Len())
	}
}

func TestLedgerSnapshotIsCopy(t *testing.T) {
	var l ledger
	l.Append("original")
	snap := l.Snapshot()
	snap[0] = "mutated"
	if got := l.Snapshot()[0]; got != "original" {
		t.Fatalf("snapshot mutation leaked into ledger: %q", got)
	}
}
