package main

import (
	"log"

	"github.com/feriapp/backend/cmd/app"
	"github.com/feriapp/backend/internal/adapters/config"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	a.Start()
}
