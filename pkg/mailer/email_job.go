package mailer

import "strings"

// EmailJob is one message to send. Either Template (rendered with Data) or the
// literal Subject/Text/HTML fields are used.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// EnsureRecipient fills Data["Email"] from To when the template data lacks it.
func (j *EmailJob) EnsureRecipient() {
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["Email"].(string); !ok || strings.TrimSpace(v) == "" {
		j.Data["Email"] = j.To
	}
}
