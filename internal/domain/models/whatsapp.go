package models

import "strings"

// WebhookPayload is the body of a WhatsApp Cloud API webhook callback. Only
// the parts needed to read staff commands are decoded.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string `json:"field"`
	Value struct {
		MessagingProduct string           `json:"messaging_product"`
		Messages         []InboundMessage `json:"messages"`
	} `json:"value"`
}

// Messages flattens every inbound message of the payload, in delivery order.
func (p WebhookPayload) Messages() []InboundMessage {
	var out []InboundMessage
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			out = append(out, change.Value.Messages...)
		}
	}
	return out
}

// InboundMessage is one message sent to the brewery number. Staff send
// commands as text, or by tapping a quick-reply button whose id is the command.
type InboundMessage struct {
	From        string       `json:"from"`
	ID          string       `json:"id"`
	Timestamp   string       `json:"timestamp"`
	Type        string       `json:"type"`
	Text        *MessageText `json:"text,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

type MessageText struct {
	Body string `json:"body"`
}

// Interactive holds the choice a user tapped in a button or list message.
type Interactive struct {
	Type        string       `json:"type"`
	ButtonReply *ReplyChoice `json:"button_reply,omitempty"`
	ListReply   *ReplyChoice `json:"list_reply,omitempty"`
}

type ReplyChoice struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CommandText returns the command carried by the message, or "" for media
// and other messages that cannot hold one.
func (m InboundMessage) CommandText() string {
	switch {
	case m.Text != nil:
		return strings.TrimSpace(m.Text.Body)
	case m.Interactive == nil:
		return ""
	case m.Interactive.ButtonReply != nil:
		return m.Interactive.ButtonReply.ID
	case m.Interactive.ListReply != nil:
		return m.Interactive.ListReply.ID
	}
	return ""
}
