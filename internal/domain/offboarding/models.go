package offboarding

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Reason string

const (
	ReasonVoluntaryResignation   Reason = "voluntary_resignation"
	ReasonInvoluntaryPerformance Reason = "involuntary_performance"
	ReasonInvoluntaryAttendance  Reason = "involuntary_attendance"
	ReasonInvoluntaryConduct     Reason = "involuntary_conduct"
	ReasonLayoff                 Reason = "layoff"
	ReasonEndOfContract          Reason = "end_of_contract"
	ReasonJobAbandonment         Reason = "job_abandonment"
	ReasonRetirement             Reason = "retirement"
	ReasonOther                  Reason = "other"
)

// Reasons lists every valid termination reason, in display order.
var Reasons = []Reason{
	ReasonVoluntaryResignation,
	ReasonInvoluntaryPerformance,
	ReasonInvoluntaryAttendance,
	ReasonInvoluntaryConduct,
	ReasonLayoff,
	ReasonEndOfContract,
	ReasonJobAbandonment,
	ReasonRetirement,
	ReasonOther,
}

func (r Reason) Valid() bool {
	for _, known := range Reasons {
		if r == known {
			return true
		}
	}
	return false
}

// Document is uploaded-file metadata; storage itself is external.
type Document struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Termination is the structured sub-record attached when an employee is
// terminated. Records are retained indefinitely; normal operation never
// hard-deletes them.
type Termination struct {
	Date                time.Time        `json:"date"`
	LastWorkingDay      time.Time        `json:"lastWorkingDay"`
	Reason              Reason           `json:"reason"`
	Notes               string           `json:"notes,omitempty"`
	Documents           []Document       `json:"documents,omitempty"`
	FinalPayout         *decimal.Decimal `json:"finalPayout,omitempty"`
	ExitSurveyCompleted bool             `json:"exitSurveyCompleted"`
	EquipmentReturned   bool             `json:"equipmentReturned"`
}

func (t Termination) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("termination date is required")
	}
	if !t.Reason.Valid() {
		return fmt.Errorf("unknown termination reason %q", t.Reason)
	}
	if !t.LastWorkingDay.IsZero() && t.LastWorkingDay.After(t.Date.AddDate(0, 6, 0)) {
		return fmt.Errorf("last working day too far after termination date")
	}
	return nil
}
