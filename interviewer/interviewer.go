// Package interviewer produces the interviewer side of a mock interview:
// the next question after each candidate answer, and a scored evaluation of
// the whole session.
package interviewer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Role string

const (
	RoleDataAnalyst        Role = "Data Analyst"
	RoleSoftwareDeveloper  Role = "Software Developer"
	RoleProductManager     Role = "Product Manager"
	RoleMarketingExecutive Role = "Marketing Executive"
)

var Roles = []Role{
	RoleDataAnalyst,
	RoleSoftwareDeveloper,
	RoleProductManager,
	RoleMarketingExecutive,
}

// ParseRole resolves a user-supplied role name, tolerating case and
// hyphen/underscore separators.
func ParseRole(s string) (Role, error) {
	norm := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s)))
	norm = strings.Join(strings.Fields(norm), " ")
	for _, r := range Roles {
		if strings.ToLower(string(r)) == norm {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ErrGeneration marks a backend that answered but produced nothing usable.
var ErrGeneration = errors.New("generation returned no text")

// Generator is the language-model boundary. Both methods return a non-empty
// string within the caller's context deadline or an error.
type Generator interface {
	// NextTurn produces a short conversational follow-up or next question,
	// conditioned on the role, the current question and the candidate's
	// latest answer.
	NextTurn(ctx context.Context, answer, question string, role Role) (string, error)
	// Evaluate scores the full set of answers for the role, 0-10 with brief
	// feedback.
	Evaluate(ctx context.Context, answers []string, role Role) (string, error)
}

func turnPrompt(answer, question string, role Role) string {
	return fmt.Sprintf(
		"You are a mock interviewer for a %s role.\n"+
			"You asked: '%s'\n"+
			"The candidate says: '%s'\n"+
			"Give a natural, conversational, short follow-up or next question.",
		role, question, answer)
}

func evaluationPrompt(answers []string, role Role) string {
	var sb strings.Builder
	for i, ans := range answers {
		fmt.Fprintf(&sb, "Answer %d: %s\n", i+1, ans)
	}
	return fmt.Sprintf(
		"You are a professional interviewer evaluating a mock interview for a %s position.\n"+
			"Here are the candidate's answers:\n%s"+
			"Give a final evaluation score out of 10 with 1-2 lines of feedback.",
		role, sb.String())
}
