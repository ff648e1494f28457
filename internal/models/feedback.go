package models

// Feedback types accepted from the public feedback form.
const (
	FeedbackSuggestion     = "suggestion"
	FeedbackFeatureRequest = "feature_request"
	FeedbackBugReport      = "bug_report"
	FeedbackOther          = "other"
)

// Feedback is a message submitted through the public feedback form.
// Submitters do not need an account, so Email and Name are free-form
// and optional.
type Feedback struct {
	// ID is the unique identifier for the feedback (UUID format).
	ID string `json:"id"`

	// Type is one of the Feedback* constants.
	Type string `json:"type"`

	// Title is a short summary.
	Title string `json:"title"`

	// Description is the full message body.
	Description string `json:"description"`

	// Email and Name identify the submitter, if they chose to say.
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`

	// CreatedAt is the Unix timestamp when the feedback was received.
	CreatedAt int64 `json:"created_at"`
}
