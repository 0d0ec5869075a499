package interviewer

import (
	"context"
	"fmt"
	"sync"
)

// Fake is a scripted generator for tests. It records every call and can be
// told to fail or to block until released.
type Fake struct {
	TurnText string
	TurnErr  error
	EvalText string
	EvalErr  error
	Gate     chan struct{} // when non-nil, NextTurn blocks until the gate closes

	mu        sync.Mutex
	turnCalls []string // answers, in call order
	evalCalls [][]string
}

func (f *Fake) NextTurn(ctx context.Context, answer, question string, role Role) (string, error) {
	f.mu.Lock()
	f.turnCalls = append(f.turnCalls, answer)
	n := len(f.turnCalls)
	f.mu.Unlock()
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.TurnErr != nil {
		return "", f.TurnErr
	}
	if f.TurnText != "" {
		return f.TurnText, nil
	}
	return fmt.Sprintf("Follow-up %d", n), nil
}

func (f *Fake) Evaluate(ctx context.Context, answers []string, role Role) (string, error) {
	f.mu.Lock()
	snapshot := make([]string, len(answers))
	copy(snapshot, answers)
	f.evalCalls = append(f.evalCalls, snapshot)
	f.mu.Unlock()
	if f.EvalErr != nil {
		return "", f.EvalErr
	}
	if f.EvalText != "" {
		return f.EvalText, nil
	}
	return "Score: 7/10. Solid answers.", nil
}

func (f *Fake) TurnCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.turnCalls))
	copy(out, f.turnCalls)
	return out
}

func (f *Fake) EvalCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.evalCalls))
	copy(out, f.evalCalls)
	return out
}
