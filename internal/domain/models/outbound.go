package models

// OutboundMessageRequest represents requests to send a message manually via the API.
type OutboundMessageRequest struct {
	To         string `json:"to" validate:"required,max=32"`
	Message    string `json:"message" validate:"required,max=4096"`
	PreviewURL bool   `json:"preview_url"`
}

// AutomationReply is a canned answer for commands that need no store access.
type AutomationReply struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
