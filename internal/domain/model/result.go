package model

// FailureKind classifies a structured failure returned as data instead of a
// raised error: callers branch on the kind, not on error types.
type FailureKind string

const (
	FailureNotFound          FailureKind = "not_found"
	FailureInvalidTransition FailureKind = "invalid_transition"
	FailureConflict          FailureKind = "conflict"
	FailureValidation        FailureKind = "validation"
	FailureInfrastructure    FailureKind = "infrastructure"
)

// TransitionCheck is the outcome of a pure transition validation.
type TransitionCheck struct {
	Valid  bool
	Reason string
}

// TransitionResult is the outcome of a transition attempt against the store.
type TransitionResult struct {
	OrderID        int64
	Success        bool
	Idempotent     bool
	Kind           FailureKind
	Message        string
	PreviousStatus *OrderStatus
	NewStatus      *OrderStatus
}

// TransitionPreview is the outcome of a non-mutating can-transition query.
type TransitionPreview struct {
	OrderID       int64
	CanTransition bool
	Idempotent    bool
	CurrentStatus *OrderStatus
	Reason        string
	Kind          FailureKind
}

// ValidationReport accumulates errors and warnings from consistency checks.
// Warnings never affect validity.
type ValidationReport struct {
	PaymentID int64
	Valid     bool
	Errors    []string
	Warnings  []string
	Data      map[string]any
}

// NewValidationReport returns an empty passing report.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{Valid: true, Data: make(map[string]any)}
}

// AddError records a failed check and marks the report invalid.
func (r *ValidationReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// AddWarning records a non-fatal finding.
func (r *ValidationReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Merge folds another report into this one, combining errors, warnings and data.
func (r *ValidationReport) Merge(other *ValidationReport) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	for k, v := range other.Data {
		r.Data[k] = v
	}
	if !other.Valid {
		r.Valid = false
	}
}
