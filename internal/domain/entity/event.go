package entity

import "time"

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OwnerID     string `gorm:"not null;type:uuid"`
	Title       string `gorm:"not null"`
	Description string
	// Date is the instant the event takes place, stored in UTC. Which civil
	// day it belongs to is decided in the reference timezone.
	Date time.Time `gorm:"not null;index"`
}
