package entity

import "time"

type Rating struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	EventID   string `gorm:"not null;type:uuid;index"`
	UserID    string `gorm:"not null;type:uuid"`
	Score     int    `gorm:"not null"`
	Comment   string
}
