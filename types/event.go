package types

import "time"

// EventType names a domain event published to the broker.
type EventType string

// Domain events.
const (
	EventJobPosted                EventType = "job.posted"
	EventApplicationSubmitted     EventType = "application.submitted"
	EventApplicationStatusChanged EventType = "application.status_changed"
)

// Event is the JSON payload of a domain event.
type Event struct {
	ID            string            `json:"id"`
	Type          EventType         `json:"type"`
	OccurredAt    time.Time         `json:"occurredAt"`
	ActorID       ID                `json:"actorId"`
	JobID         ID                `json:"jobId,omitempty"`
	CompanyID     ID                `json:"companyId,omitempty"`
	ApplicationID ID                `json:"applicationId,omitempty"`
	Status        ApplicationStatus `json:"status,omitempty"`
}
