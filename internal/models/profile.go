package models

// UserProfile holds the display attributes a user shows on the map and in
// chat. One profile per account, created on first login, mutated only by
// its owner.
type UserProfile struct {
	Base        `bson:",inline"`
	UserID      string     `json:"userId"                bson:"userId"`
	DisplayName string     `json:"displayName"           bson:"displayName"`
	Bio         string     `json:"bio,omitempty"         bson:"bio,omitempty"`
	Age         *int       `json:"age,omitempty"         bson:"age,omitempty"`
	Gender      string     `json:"gender,omitempty"      bson:"gender,omitempty"`
	LookingFor  string     `json:"lookingFor,omitempty"  bson:"lookingFor,omitempty"`
	Interests   []string   `json:"interests,omitempty"   bson:"interests,omitempty"`
	Photos      []Photo    `json:"photos,omitempty"      bson:"photos,omitempty"`
	Visibility  Visibility `json:"visibility"            bson:"visibility"`
}

// Photo references an uploaded profile image.
type Photo struct {
	Key       string `json:"key"                 bson:"key"`
	URL       string `json:"url"                 bson:"url"`
	IsPrimary bool   `json:"isPrimary,omitempty" bson:"isPrimary,omitempty"`
}
