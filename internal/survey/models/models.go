package models

import "time"

// ResponseStatus is the lifecycle state of a survey response.
//
// Transitions are monotonic: partial → submitted, never reversed. Nothing in
// this codebase ever writes StatusPartial onto an existing response, so the
// invariant holds structurally; CanTransitionTo documents it for callers.
type ResponseStatus string

const (
	StatusPartial   ResponseStatus = "partial"
	StatusSubmitted ResponseStatus = "submitted"
)

// CanTransitionTo reports whether the status change is allowed.
func (s ResponseStatus) CanTransitionTo(target ResponseStatus) bool {
	return s == StatusPartial && target == StatusSubmitted
}

// FallbackSurveyID is the sentinel survey identifier used when the definition
// registry is unreachable. Downstream operations never block on registry
// failure; responses created against this ID simply carry no foreign key.
const FallbackSurveyID = "mem_survey"

// SurveyDefinition pins a survey spec to a version. At most one definition
// exists per (SpecID, Version); it is immutable once created.
type SurveyDefinition struct {
	ID        string         `json:"id"`
	SpecID    string         `json:"spec_id"`
	Version   int            `json:"version"`
	Meta      map[string]any `json:"meta"`
	CreatedAt time.Time      `json:"created_at"`
}

// Response is a respondent's in-progress or finalized survey submission.
//
// Token is the only handle ever exposed to respondents; the internal ID never
// leaves the resume flow. OwnerUserID is empty for anonymous respondents.
type Response struct {
	ID          string         `json:"id"`
	SurveyID    string         `json:"survey_id"`
	OwnerUserID string         `json:"owner_user_id,omitempty"`
	Token       string         `json:"-"`
	Status      ResponseStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ApplySubmit finalizes the response. Idempotent in effect: a response that is
// already submitted stays submitted, only UpdatedAt moves.
func (r *Response) ApplySubmit(now time.Time) {
	r.Status = StatusSubmitted
	r.UpdatedAt = now
}

// ResponseListing is the flattened shape returned by list operations: answers
// collapsed into a questionID → value map, matching what LoadByToken returns.
type ResponseListing struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Data      map[string]any `json:"data"`
}

// QueuedEmail is an append-only record awaiting delivery by an external
// sender. Never mutated and never dequeued by this service.
type QueuedEmail struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
