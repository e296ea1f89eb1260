package location

import (
	"log"
	"time"
)

// Name is the reference timezone. Every "today"/"tomorrow" decision in the
// notification engine is made against this civil calendar.
const Name = "Europe/Madrid"

var location *time.Location

func init() {
	var err error
	location, err = time.LoadLocation(Name)
	if err != nil {
		log.Fatalf("error while load time location: %v", err)
	}
}

func Location() *time.Location {
	return location
}
