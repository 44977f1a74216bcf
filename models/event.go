package models

// Event is a calendar entry. EventDate is a plain ISO date string; EventTime
// is optional "HH:MM". Events are hard-deleted, unlike members.
type Event struct {
	ID                string  `bson:"id" json:"id"`
	Title             string  `bson:"title" json:"title"`
	Description       string  `bson:"description" json:"description"`
	EventDate         string  `bson:"event_date" json:"event_date"`
	EventTime         *string `bson:"event_time" json:"event_time"`
	EventType         string  `bson:"event_type" json:"event_type"`
	Location          string  `bson:"location" json:"location"`
	IsRecurring       bool    `bson:"is_recurring" json:"is_recurring"`
	RecurrencePattern *string `bson:"recurrence_pattern" json:"recurrence_pattern"`
	CreatedBy         string  `bson:"created_by" json:"created_by"`
	CreatedAt         string  `bson:"created_at" json:"created_at"`
}
