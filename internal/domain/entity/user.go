package entity

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex"`
	Role      Role   `gorm:"not null;default:user"`
	// Favorites holds the IDs of events the user wants reminders for.
	Favorites pq.StringArray `gorm:"type:text[]"`
	Banned    bool
}
