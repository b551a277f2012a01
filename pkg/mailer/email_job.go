package mailer

// EmailJob is the JSON message the API queues on RabbitMQ and the email worker consumes.
// Either Template+Data is set, or Subject with Text and/or HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`

	// AppointmentID ties the mail back to the booking in worker logs.
	AppointmentID string `json:"appointment_id,omitempty"`
}
