package dto

import "time"

// UserNotification is a notification row joined with the related event's
// title, as shown in the recipient's in-app list.
type UserNotification struct {
	ID         string
	EventID    *string
	EventTitle string
	Kind       string
	Message    string
	Read       bool
	DayKey     *string
	CreatedAt  time.Time
}
