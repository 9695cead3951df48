package main

import (
	"log"

	"github.com/flyee/flights/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("flights API failed to start: %v", err)
	}
}
