package infrastructure

import (
	"strings"

	"playbook/ledger-service/domain/events"
)

const eventSubjectPrefix = "ledger.events."

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	return eventSubjectPrefix + string(event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	return events.EventType(strings.TrimPrefix(subject, eventSubjectPrefix))
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	types := []events.EventType{
		events.EventTypeBalanceChange,
		events.EventTypeUserCreated,
		events.EventTypeTradeExecuted,
		events.EventTypeBetPlaced,
		events.EventTypeBetResolved,
		events.EventTypeParlayCreated,
		events.EventTypeParlayResolved,
		events.EventTypeGameSettled,
		events.EventTypeTradeOfferCreated,
		events.EventTypeTradeOfferAccepted,
	}

	subjects := make([]string, 0, len(types))
	for _, t := range types {
		subjects = append(subjects, eventSubjectPrefix+string(t))
	}
	return subjects
}
