package models

// District is a pastoral care area led by a member.
type District struct {
	OriginalID int    `bson:"original_id" json:"original_id"`
	Number     int    `bson:"number" json:"number"`
	LeaderID   int    `bson:"leader_id" json:"leader_id"`
	Area       string `bson:"area" json:"area"`
	RegionID   int    `bson:"region_id,omitempty" json:"region_id,omitempty"`

	// Resolved at read time, never stored.
	LeaderName string `bson:"-" json:"leader_name"`
}

// Presbyter links a member to the presbyter role.
type Presbyter struct {
	OriginalID int `bson:"original_id" json:"original_id"`
	MemberID   int `bson:"member_id" json:"member_id"`
}

// Deacon links a member to the deacon role, optionally under a presbyter.
type Deacon struct {
	OriginalID  int  `bson:"original_id" json:"original_id"`
	MemberID    int  `bson:"member_id" json:"member_id"`
	PresbyterID *int `bson:"presbyter_id" json:"presbyter_id"`
}
