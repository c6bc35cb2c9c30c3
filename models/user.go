package models

import "time"

// Login channels, mirroring the LOGIN_BY choices of the mobile clients.
const (
	LoginByGeneral  = 1
	LoginByGuest    = 2
	LoginByGoogle   = 3
	LoginByFacebook = 4
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Username       string     `json:"username"`
	PhoneNumber    string     `json:"phone_number"`
	DOB            *time.Time `json:"dob"`
	MaritalStatus  string     `json:"marital_status"`
	Nationality    string     `json:"nationality"`
	Gender         string     `json:"gender"`
	Country        string     `json:"country"`
	City           string     `json:"city"`
	Address        string     `json:"address"`
	ZipCode        string     `json:"zip_code"`
	Password       string     `json:"-"`
	LoginBy        int        `gorm:"default:1" json:"login_by"`
	IsCustomer     bool       `json:"is_customer"`
	IsStaff        bool       `json:"is_staff"`
	IsEmail        bool       `json:"is_email"` // email verified
	TwoFactor      bool       `json:"two_factor"`
	ProfilePicture string     `json:"profile_picture"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
