package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-barber/pkg/mailer"
	mailtpl "github.com/oksasatya/go-barber/pkg/mailer/templates"
)

// SubjectFor returns a fallback subject for jobs that carry a template but no subject template output.
func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.Cancellation:
		return "Appointment canceled"
	default:
		return "Notification"
	}
}

// EnsureRecipientAndEmail fills Email/RecipientEmail in job.Data from job.To when missing.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
