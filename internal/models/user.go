package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCollection is the collection holding registered users.
const UserCollection = "users"

// Gender values accepted at registration and enforced at write time.
const (
	GenderMale        = "Male"
	GenderFemale      = "Female"
	GenderUndisclosed = "Preferred not to say"
)

// ValidGender reports whether g is one of the enumerated gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUndisclosed:
		return true
	}
	return false
}

// User is the sole persisted entity. Username and email carry unique
// indexes; the password is only ever stored as a bcrypt hash.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Age          int                `bson:"age" json:"age"`
	Gender       string             `bson:"gender" json:"gender"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
