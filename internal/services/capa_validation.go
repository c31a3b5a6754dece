package services

import (
	"strings"
	"time"

	"github.com/regsight/regsight-core/internal/models"
)

const minNarrativeLength = 10

// ValidateCAPADraft checks a draft against the register entry rules. Every
// entry point uses this one rule set, so a draft rejected on creation is
// also rejected on update. All failing fields are reported together; an
// empty map means the draft is acceptable.
func ValidateCAPADraft(draft models.CAPADraft, today time.Time) models.ValidationErrors {
	errs := models.ValidationErrors{}

	if strings.TrimSpace(draft.RPIID) == "" {
		errs["rpiId"] = "Indicator selection is required."
	}
	if len(strings.TrimSpace(draft.RootCause)) < minNarrativeLength {
		errs["rootCause"] = "Root cause analysis is too short."
	}
	if len(strings.TrimSpace(draft.ActionPlan)) < minNarrativeLength {
		errs["actionPlan"] = "Action plan is too short."
	}
	if strings.TrimSpace(draft.Owner) == "" {
		errs["owner"] = "Owner is required."
	}

	due := strings.TrimSpace(draft.DueDate)
	if due == "" {
		errs["dueDate"] = "Due date is required."
	} else if parsed, err := time.Parse(models.DueDateLayout, due); err != nil {
		errs["dueDate"] = "Due date is invalid."
	} else if parsed.Before(startOfDay(today)) {
		errs["dueDate"] = "Due date cannot be in the past."
	}

	return errs
}

// startOfDay truncates a timestamp to calendar-day granularity in UTC, the
// same granularity due dates are stored at.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
