package models

// Service links a member to a service type. A nil EndDate means the service
// is currently held. Members may hold many services, overlapping included.
type Service struct {
	OriginalID       int     `bson:"original_id" json:"original_id"`
	MemberOriginalID int     `bson:"member_original_id" json:"member_original_id"`
	ServiceTypeID    int     `bson:"service_type_id" json:"service_type_id"`
	StartDate        *string `bson:"start_date" json:"start_date"`
	EndDate          *string `bson:"end_date" json:"end_date"`
}

// ServiceType is a small reference entity with localized names.
type ServiceType struct {
	OriginalID int    `bson:"original_id" json:"original_id"`
	NameUkr    string `bson:"name_ukr" json:"name_ukr"`
	NameRus    string `bson:"name_rus,omitempty" json:"name_rus,omitempty"`
}
