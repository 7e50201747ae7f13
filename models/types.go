package models

import (
	"fmt"
	"sort"
)

// Respondent type constants
const (
	UserTypeStudent = "student"
	UserTypeTeacher = "teacher"
)

// Rating bounds for innovation, design and functionality
const (
	RatingMin = 1
	RatingMax = 5
)

// Submission outcome constants
const (
	// OutcomeConfirmed means the remote backend acknowledged the write
	// before the ceiling elapsed.
	OutcomeConfirmed = "confirmed"
	// OutcomeAssumed means the ceiling elapsed first. The write is not
	// known to have failed, only to be slow; it is reported as success
	// because the local copy already holds it.
	OutcomeAssumed = "assumed"
	// OutcomeLocalOnly means the remote backend returned a definite error
	// before the ceiling. The local copy is kept; a retry may be needed.
	OutcomeLocalOnly = "local_only"
)

// Domain types

// Evaluation is one submitted rating record for one project by one
// respondent. It is immutable once created; ID and Timestamp are assigned
// by the submitting client, never by a backend.
type Evaluation struct {
	ID            string `json:"id"`
	ProjectID     string `json:"projectId"`
	UserType      string `json:"userType"`
	Innovation    int    `json:"innovation"`
	Design        int    `json:"design"`
	Functionality int    `json:"functionality"`
	WouldPay      bool   `json:"wouldPay"`
	Comment       string `json:"comment"`
	Timestamp     int64  `json:"timestamp"` // milliseconds since epoch
}

// EvaluationDraft is the caller-supplied half of an Evaluation. WouldPay is
// a pointer so an unset value is distinguishable from an explicit false.
type EvaluationDraft struct {
	ProjectID     string `json:"projectId"`
	UserType      string `json:"userType"`
	Innovation    int    `json:"innovation"`
	Design        int    `json:"design"`
	Functionality int    `json:"functionality"`
	WouldPay      *bool  `json:"wouldPay"`
	Comment       string `json:"comment"`
}

// ConnectivityStatus reports whether the last remote operation succeeded.
// It is diagnostic only and never blocks local reads or writes.
type ConnectivityStatus struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

// UpdateKind discriminates Update payloads.
type UpdateKind int

const (
	DataUpdate UpdateKind = iota
	StatusUpdate
)

// Update is the tagged value delivered to sync subscribers: exactly one of
// Data or Status is meaningful, indicated by Kind. Data and status travel
// on the same channel so subscribers observe them in emission order.
type Update struct {
	Kind   UpdateKind
	Data   []Evaluation
	Status ConnectivityStatus
}

// NewDataUpdate wraps a full evaluation snapshot.
func NewDataUpdate(evals []Evaluation) Update {
	return Update{Kind: DataUpdate, Data: evals}
}

// NewStatusUpdate wraps a connectivity change.
func NewStatusUpdate(status ConnectivityStatus) Update {
	return Update{Kind: StatusUpdate, Status: status}
}

// Project is one entry of the static catalog.
type Project struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Members  []string `json:"members"`
}

// ProjectStats aggregates all evaluations of one project for the admin view.
type ProjectStats struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	TotalVotes       int     `json:"totalVotes"`
	AvgInnovation    float64 `json:"avgInnovation"`
	AvgDesign        float64 `json:"avgDesign"`
	AvgFunctionality float64 `json:"avgFunctionality"`
	PayYes           int     `json:"payYes"`
	PayNo            int     `json:"payNo"`
}

// SortEvaluations orders a snapshot by timestamp descending, in place.
// The sort is stable, so sorting an already-sorted snapshot is a no-op and
// records sharing a timestamp keep their relative order.
func SortEvaluations(evals []Evaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].Timestamp > evals[j].Timestamp
	})
}

// Validation

// ValidationError reports a draft rejected before any I/O. Violating the
// draft contract is a caller error, not a runtime failure path.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid draft: %s %s", e.Field, e.Reason)
}

// Validate checks the caller contract: all three ratings in [1,5], a known
// user type, and WouldPay explicitly set. Project membership is checked by
// the submission pipeline against the catalog, not here.
func (d *EvaluationDraft) Validate() error {
	ratings := []struct {
		name  string
		value int
	}{
		{"innovation", d.Innovation},
		{"design", d.Design},
		{"functionality", d.Functionality},
	}
	for _, r := range ratings {
		if r.value < RatingMin || r.value > RatingMax {
			return &ValidationError{Field: r.name, Reason: fmt.Sprintf("must be between %d and %d", RatingMin, RatingMax)}
		}
	}
	if d.UserType != UserTypeStudent && d.UserType != UserTypeTeacher {
		return &ValidationError{Field: "userType", Reason: "must be student or teacher"}
	}
	if d.WouldPay == nil {
		return &ValidationError{Field: "wouldPay", Reason: "must be explicitly set"}
	}
	return nil
}

// Response types

type SubmitEvaluationResponse struct {
	Outcome    string     `json:"outcome"`
	Evaluation Evaluation `json:"evaluation"`
	Warning    string     `json:"warning,omitempty"`
}

type ClearResponse struct {
	Cleared bool   `json:"cleared"`
	Warning string `json:"warning,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
