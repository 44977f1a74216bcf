package models

// Reference table types populated by the legacy import.
const (
	RefMaritalStatus   = "marital_status"
	RefSocialStatus    = "social_status"
	RefEducation       = "education"
	RefProfession      = "profession"
	RefDepartureReason = "departure_reason"
)

// ReferenceTable is a named key→label lookup. Keys are legacy string ids,
// values are localized labels.
type ReferenceTable struct {
	Type string            `bson:"type" json:"type"`
	Data map[string]string `bson:"data" json:"data"`
}

// ChurchInfo is a single-document collection describing the congregation.
type ChurchInfo struct {
	Name     string `bson:"name" json:"name"`
	City     string `bson:"city" json:"city"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Language string `bson:"language,omitempty" json:"language,omitempty"`
}

// DefaultChurchInfo is returned when the collection has not been imported yet.
func DefaultChurchInfo() ChurchInfo {
	return ChurchInfo{Name: "УЦХВЄ", City: "м. Івано-Франківськ"}
}
