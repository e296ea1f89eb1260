package postgres

import "github.com/feriapp/backend/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Event{},
	&entity.Rating{},
	&entity.Notification{},
}
