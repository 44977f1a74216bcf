package models

// Member is a congregation member record. Documents are keyed by OriginalID,
// which is assigned once (legacy id on import, max+1 on creation) and never
// reused. Date fields are ISO strings; nil means "not filled in".
type Member struct {
	OriginalID  int     `bson:"original_id" json:"original_id"`
	PIB         string  `bson:"pib" json:"pib"`
	Gender      string  `bson:"gender" json:"gender"`
	GenderUkr   string  `bson:"gender_ukr" json:"gender_ukr"`
	BirthDate   *string `bson:"birth_date" json:"birth_date"`
	PhoneHome   string  `bson:"phone_home" json:"phone_home"`
	PhoneMobile string  `bson:"phone_mobile" json:"phone_mobile"`
	Email       string  `bson:"email" json:"email"`
	Skype       string  `bson:"skype" json:"skype"`

	RepentanceDate *string `bson:"repentance_date" json:"repentance_date"`
	BaptismDate    *string `bson:"baptism_date" json:"baptism_date"`
	HolySpirit     bool    `bson:"holy_spirit" json:"holy_spirit"`
	JoinDate       *string `bson:"join_date" json:"join_date"`

	MaritalStatusID string `bson:"marital_status_id" json:"marital_status_id"`
	SocialStatusID  string `bson:"social_status_id" json:"social_status_id"`
	EducationID     string `bson:"education_id" json:"education_id"`
	EducationPlace  string `bson:"education_place" json:"education_place"`
	ProfessionID    string `bson:"profession_id" json:"profession_id"`

	// Labels denormalized from the reference tables at creation/import time.
	// They are a point-in-time snapshot and are not refreshed when the
	// reference table changes; statistics re-resolve labels at read time.
	MaritalStatus   string `bson:"marital_status,omitempty" json:"marital_status,omitempty"`
	SocialStatus    string `bson:"social_status,omitempty" json:"social_status,omitempty"`
	Education       string `bson:"education,omitempty" json:"education,omitempty"`
	Profession      string `bson:"profession,omitempty" json:"profession,omitempty"`
	DepartureReason string `bson:"departure_reason,omitempty" json:"departure_reason,omitempty"`

	HasCar            bool    `bson:"has_car" json:"has_car"`
	CarModel          string  `bson:"car_model" json:"car_model"`
	DepartureReasonID string  `bson:"departure_reason_id,omitempty" json:"departure_reason_id,omitempty"`
	DepartureDate     *string `bson:"departure_date,omitempty" json:"departure_date,omitempty"`
	IsSick            bool    `bson:"is_sick,omitempty" json:"is_sick,omitempty"`
	OtherChurch       string  `bson:"other_church,omitempty" json:"other_church,omitempty"`
	Notes             string  `bson:"notes" json:"notes"`
	IsActive          bool    `bson:"is_active" json:"is_active"`
	PhotoPath         string  `bson:"photo_path,omitempty" json:"photo_path,omitempty"`
	PhotoURL          *string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
}

// GenderLabel returns the localized form of address derived from gender.
func GenderLabel(gender string) string {
	if gender == "male" {
		return "брат"
	}
	return "сестра"
}

// SpouseRef is the minimal projection of a spouse attached to a member view.
type SpouseRef struct {
	OriginalID int    `bson:"original_id" json:"original_id"`
	PIB        string `bson:"pib" json:"pib"`
}

// ServiceSummary is a resolved service entry on a member view.
type ServiceSummary struct {
	Name      string  `json:"name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  bool    `json:"is_active"`
}

// MemberView is a member with its relationships assembled: service history,
// spouse (the other side of the family record) and children. Spouse and
// children are absent entirely when no family record exists.
type MemberView struct {
	Member   `bson:",inline"`
	Services []ServiceSummary `json:"services"`
	Spouse   *SpouseRef       `json:"spouse,omitempty"`
	Children []Child          `json:"children,omitempty"`
}
