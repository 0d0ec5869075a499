package interviewer

import (
	"strings"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  Role
	}{
		{"Data Analyst", RoleDataAnalyst},
		{"data analyst", RoleDataAnalyst},
		{"software-developer", RoleSoftwareDeveloper},
		{"software_developer", RoleSoftwareDeveloper},
		{"  Product  Manager ", RoleProductManager},
		{"MARKETING EXECUTIVE", RoleMarketingExecutive},
	} {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if err != nil {
				t.Fatalf("ParseRole(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRoleUnknown(t *testing.T) {
	if _, err := ParseRole("astronaut"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestTurnPrompt(t *testing.T) {
	p := turnPrompt("I led a migration", "Tell me about a project", RoleSoftwareDeveloper)
	for _, want := range []string{
		"Software Developer role",
		"'Tell me about a project'",
		"'I led a migration'",
		"short follow-up",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("turn prompt missing %q:\n%s", want, p)
		}
	}
}

func TestEvaluationPrompt(t *testing.T) {
	answers := []string{"I have 3 years experience", "I led a team of 5"}
	p := evaluationPrompt(answers, RoleSoftwareDeveloper)
	for _, want := range []string{
		"Software Developer position",
		"Answer 1: I have 3 years experience",
		"Answer 2: I led a team of 5",
		"score out of 10",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("evaluation prompt missing %q:\n%s", want, p)
		}
	}
}

func TestEvaluationPromptOrdering(t *testing.T) {
	p := evaluationPrompt([]string{"first", "second", "third"}, RoleDataAnalyst)
	i1 := strings.Index(p, "Answer 1: first")
	i2 := strings.Index(p, "Answer 2: second")
	i3 := strings.Index(p, "Answer 3: third")
	if i1 < 0 || i2 < 0 || i3 < 0 || !(i1 < i2 && i2 < i3) {
		t.Errorf("answers out of order in prompt:\n%s", p)
	}
}
