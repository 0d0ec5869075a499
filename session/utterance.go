// Package session implements the interview session core: the state machine
// driving an interview, the recording pipeline that turns captured audio into
// finalized answers, and the coordination between user commands, background
// recognition and turn generation.
package session

type Speaker int

const (
	Interviewer Speaker = iota
	Candidate
	System
	Evaluation
)

func (s Speaker) String() string {
	switch s {
	case Interviewer:
		return "Interviewer"
	case Candidate:
		return "You"
	case System:
		return "System"
	case Evaluation:
		return "Evaluation"
	}
	return "Unknown"
}

// Utterance is one line of the interview, flowing from the controller to the
// presentation layer and the narrator. Not persisted.
type Utterance struct {
	Speaker Speaker
	Text    string
}
