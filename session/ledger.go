package session

import "sync"

// ledger is the append-only store of the candidate's answers for one
// interview. It is cleared when a new interview starts and snapshotted for
// the final evaluation.
type ledger struct {
	mu      sync.Mutex
	answers []string
}

func (l *ledger) Append(text string) {
	l.mu.Lock()
	l.answers = append(l.answers, text)
	l.mu.Unlock()
}

func (l *ledger) Reset() {
	l.mu.Lock()
	l.answers = nil
	l.mu.Unlock()
}

func (l *ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.answers)
}

// Snapshot returns a copy of the answers in append order.
func (l *ledger) Snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.answers))
	copy(out, l.answers)
	return out
}
