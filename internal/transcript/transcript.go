package transcript

import "strings"

// Speaker tags who said an utterance.
type Speaker string

const (
	SpeakerCustomer Speaker = "customer"
	SpeakerAgent    Speaker = "agent"
)

// Valid reports whether s is one of the known speakers.
func (s Speaker) Valid() bool {
	return s == SpeakerCustomer || s == SpeakerAgent
}

// Utterance is one turn of the conversation.
type Utterance struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Transcript is the append-only record of a call. The audio pipeline
// appends while the call runs; extraction reads it whole after hangup.
type Transcript struct {
	Utterances []Utterance
}

func New(utterances ...Utterance) *Transcript {
	return &Transcript{Utterances: utterances}
}

// Append adds one utterance.
func (t *Transcript) Append(speaker Speaker, text string) {
	t.Utterances = append(t.Utterances, Utterance{Speaker: speaker, Text: text})
}

// Len returns the number of utterances.
func (t *Transcript) Len() int {
	return len(t.Utterances)
}

// FullText joins every utterance with single spaces, both speakers
// included. The extractor works over this concatenated view.
func (t *Transcript) FullText() string {
	parts := make([]string, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		if u.Text != "" {
			parts = append(parts, u.Text)
		}
	}
	return strings.Join(parts, " ")
}
