package main

import (
	"log"

	"github.com/MrSnakeDoc/georepo/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ georepo failed to start: %v", err)
	}
}
