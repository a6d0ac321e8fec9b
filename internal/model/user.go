package model

import (
	"time"
)

type User struct {
	ID               int64      `db:"id"`
	Name             string     `db:"name"`
	Skills           string     `db:"skills"`
	Purpose          string     `db:"purpose"`
	Contact          string     `db:"contact"`
	ProfilePicture   string     `db:"profile_picture"` // URL or storage key, empty when unset
	DOB              *time.Time `db:"dob"`
	Age              *int       `db:"age"`
	Email            string     `db:"email"`
	PasswordHash     string     `db:"password_hash"`
	RegistrationDate time.Time  `db:"registration_date"`

	// Computed fields (not in database)
	PictureURL string `db:"-"`
}

// UserSummary is the public card shown on the landing and users pages.
type UserSummary struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Skills         string `db:"skills"`
	Purpose        string `db:"purpose"`
	Contact        string `db:"contact"`
	ProfilePicture string `db:"profile_picture"`
	Email          string `db:"email"`

	PictureURL string `db:"-"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Skills:         u.Skills,
		Purpose:        u.Purpose,
		Contact:        u.Contact,
		ProfilePicture: u.ProfilePicture,
		Email:          u.Email,
		PictureURL:     u.PictureURL,
	}
}
