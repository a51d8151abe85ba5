package conversation

import (
	"context"
	"strings"
)

// FailureText replaces every remote failure in the transcript.
const FailureText = "Sorry, something went wrong."

// Client sends one user message to the chat backend and returns the reply.
type Client interface {
	Send(ctx context.Context, message string) (string, error)
}

// State is everything the chat component owns: the transcript, the draft
// being typed, and whether a request is outstanding.
//
// The zero value is the initial state.
type State struct {
	transcript Transcript
	draft      string
	inFlight   bool
}

// SetDraft replaces the draft with the current input value.
func (s *State) SetDraft(v string) {
	s.draft = v
}

func (s State) Draft() string {
	return s.draft
}

func (s State) InFlight() bool {
	return s.inFlight
}

// Transcript returns a copy of the messages appended so far.
func (s State) Transcript() []Message {
	return s.transcript.Messages()
}

// Len reports the transcript length.
func (s State) Len() int {
	return s.transcript.Len()
}

// Begin starts a submit of the current draft. It returns the text to send
// and true when a request should be issued. A blank draft, or a request
// already in flight, makes Begin a no-op that returns false.
func (s *State) Begin() (string, bool) {
	if s.inFlight {
		return "", false
	}
	if strings.TrimSpace(s.draft) == "" {
		return "", false
	}

	text := s.draft
	s.transcript.Append(Message{Text: text, Sender: SenderUser})
	s.inFlight = true
	return text, true
}

// Resolve finishes the outstanding submit. A nil err appends reply as the
// bot message; any error appends FailureText instead. Either way the
// in-flight flag and the draft are cleared.
func (s *State) Resolve(reply string, err error) {
	text := reply
	if err != nil {
		text = FailureText
	}
	s.transcript.Append(Message{Text: text, Sender: SenderBot})
	s.inFlight = false
	s.draft = ""
}

// Submit runs a whole submit synchronously against client. It reports
// whether a request was issued; failures are folded into the transcript.
// The returned error is the remote cause, for callers that want to log it.
func (s *State) Submit(ctx context.Context, client Client) (bool, error) {
	text, ok := s.Begin()
	if !ok {
		return false, nil
	}
	reply, err := client.Send(ctx, text)
	s.Resolve(reply, err)
	return true, err
}
