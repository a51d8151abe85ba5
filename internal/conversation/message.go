// Package conversation holds the chat transcript and the submit flow as plain
// data, independent of any terminal rendering.
package conversation

// Sender tags who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single transcript entry. It has no identity beyond its
// position in the transcript.
type Message struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// Transcript is the ordered, append-only log of messages.
type Transcript struct {
	messages []Message
}

// Append adds msg to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

func (t Transcript) Len() int {
	return len(t.messages)
}

// At returns the message at position i.
func (t Transcript) At(i int) Message {
	return t.messages[i]
}

// Messages returns a copy of the transcript contents in insertion order.
func (t Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
