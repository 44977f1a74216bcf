package models

// Family links up to two members. Either side may be absent (nil). A member
// appears in at most one family record; this is an import convention, not an
// enforced constraint.
type Family struct {
	OriginalID   int     `bson:"original_id" json:"original_id"`
	HusbandID    *int    `bson:"husband_id" json:"husband_id"`
	WifeID       *int    `bson:"wife_id" json:"wife_id"`
	MarriageDate *string `bson:"marriage_date" json:"marriage_date"`
	EndDate      *string `bson:"end_date" json:"end_date"`
}

// Child belongs to exactly one family. There is no link back to a Member
// record even when the child later becomes a member.
type Child struct {
	OriginalID int     `bson:"original_id" json:"original_id"`
	FamilyID   int     `bson:"family_id" json:"family_id"`
	Name       string  `bson:"name" json:"name"`
	Surname    string  `bson:"surname" json:"surname"`
	BirthDate  *string `bson:"birth_date" json:"birth_date"`
}
