package models

import "time"

// UserAccount is the credential record behind a profile.
// PasswordHash is bcrypt and never serialized.
type UserAccount struct {
	Base         `bson:",inline"`
	Username     string     `json:"username"              bson:"username"`
	Email        string     `json:"email,omitempty"       bson:"email,omitempty"`
	PasswordHash string     `json:"-"                     bson:"passwordHash"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	LastLoginIP  string     `json:"-"                     bson:"lastLoginIp,omitempty"`
}
