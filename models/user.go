package models

// Roles, strictly ordered by capability: admin ⊃ editor ⊃ authenticated.
const (
	RoleAdmin     = "admin"
	RolePresbyter = "presbyter"
	RoleDeacon    = "deacon"
	RoleUser      = "user"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RolePresbyter, RoleDeacon, RoleUser:
		return true
	}
	return false
}

// IsEditor reports whether role may modify member and event records.
func IsEditor(role string) bool {
	return role == RoleAdmin || role == RolePresbyter || role == RoleDeacon
}

// User is an authentication identity, optionally linked to a member record.
type User struct {
	ID           string `bson:"id" json:"id"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`
	FullName     string `bson:"full_name" json:"full_name"`
	Role         string `bson:"role" json:"role"`
	MemberID     *int   `bson:"member_id" json:"member_id"`
	CreatedAt    string `bson:"created_at" json:"created_at"`
}
