package dto

// TransitionRequest describes a transition attempt payload.
type TransitionRequest struct {
	TargetStatus string `json:"target_status"`
	Reason       string `json:"reason,omitempty"`
	Force        bool   `json:"force,omitempty"`
}

// BatchTransitionEntry describes one entry of a batch transition.
type BatchTransitionEntry struct {
	OrderID      int64  `json:"order_id"`
	TargetStatus string `json:"target_status"`
	Reason       string `json:"reason,omitempty"`
	Force        bool   `json:"force,omitempty"`
}

// BatchTransitionRequest applies transitions independently per entry.
type BatchTransitionRequest struct {
	Transitions []BatchTransitionEntry `json:"transitions"`
}

// TransitionResponse carries the structured outcome of a transition attempt.
type TransitionResponse struct {
	OrderID        int64   `json:"order_id"`
	Success        bool    `json:"success"`
	Idempotent     bool    `json:"idempotent"`
	Kind           string  `json:"kind,omitempty"`
	Message        string  `json:"message"`
	PreviousStatus *string `json:"previous_status,omitempty"`
	NewStatus      *string `json:"new_status,omitempty"`
}

// TransitionPreviewResponse carries the outcome of a can-transition query.
type TransitionPreviewResponse struct {
	OrderID       int64   `json:"order_id"`
	CanTransition bool    `json:"can_transition"`
	Idempotent    bool    `json:"idempotent"`
	Kind          string  `json:"kind,omitempty"`
	CurrentStatus *string `json:"current_status,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}
