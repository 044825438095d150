package models

// AlertMessage is a text notification pushed to a farm manager over WhatsApp.
// An empty To goes to the configured alert recipient.
type AlertMessage struct {
	To         string `json:"to"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}
