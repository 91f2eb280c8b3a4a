package salesiq

// ActionReply is the only action this bot emits.
const ActionReply = "reply"

// SelectInput renders an option picker under the reply bubbles.
type SelectInput struct {
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// Reply is the outbound webhook document. Replies is always present, even
// when empty, because the widget rejects documents without it.
type Reply struct {
	Action  string       `json:"action"`
	Replies []string     `json:"replies"`
	Input   *SelectInput `json:"input,omitempty"`
}

// NewReply builds a reply with one bubble per text.
func NewReply(texts ...string) *Reply {
	replies := make([]string, 0, len(texts))
	replies = append(replies, texts...)

	return &Reply{
		Action:  ActionReply,
		Replies: replies,
	}
}

// WithSelect attaches an option picker and returns the reply for chaining.
func (r *Reply) WithSelect(options ...string) *Reply {
	r.Input = &SelectInput{
		Type:    "select",
		Options: options,
	}
	return r
}
