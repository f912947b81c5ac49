package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel maps the users table
type UserModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;size:80;not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;size:80;not null" json:"last_name"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:'STUDENT';index" json:"role"`
	Pole      *string   `gorm:"column:pole;type:varchar(20);index" json:"pole,omitempty"`
	Bio       *string   `gorm:"column:bio;type:text" json:"bio,omitempty"`
	AvatarURL *string   `gorm:"column:avatar_url;size:255" json:"avatar_url,omitempty"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u UserModel) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserBrief is the public projection embedded in other resources.
type UserBrief struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
}

func (u UserModel) Brief() UserBrief {
	return UserBrief{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
