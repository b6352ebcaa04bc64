package intake

import (
	"encoding/json"
	"fmt"
)

// Status is the closed set of receipt states driven by the intake
// pipeline. Approved and Rejected are terminal: the pipeline never
// regresses them, later user action notwithstanding.
type Status int

const (
	StatusProcessing Status = iota
	StatusNew
	StatusPendingReview
	StatusApproved
	StatusRejected
	StatusError
)

// String returns the stable wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusNew:
		return "new"
	case StatusPendingReview:
		return "pending_review"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus maps a wire name back to a Status.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "processing":
		return StatusProcessing, nil
	case "new":
		return StatusNew, nil
	case "pending_review":
		return StatusPendingReview, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	case "error":
		return StatusError, nil
	default:
		return StatusProcessing, fmt.Errorf("unknown status %q", name)
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether moving from s to next is a valid
// intake transition. Error records need fresh OCR input and become new
// records instead of transitioning.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusProcessing:
		return next == StatusNew || next == StatusPendingReview ||
			next == StatusApproved || next == StatusError
	case StatusNew, StatusPendingReview:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved, StatusRejected, StatusError:
		return false
	default:
		return false
	}
}

// MarshalJSON encodes the status as its wire name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire name into the status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
