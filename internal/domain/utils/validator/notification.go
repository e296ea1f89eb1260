package validator

import "unicode/utf8"

func NotificationRecipient(recipientID string) bool {
	return recipientID != ""
}

func NotificationMessage(message string) bool {
	return utf8.RuneCountInString(message) >= 1 && utf8.RuneCountInString(message) <= 500
}
