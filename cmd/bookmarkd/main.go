package main

import (
	"context"
	"log"

	"github.com/MrSnakeDoc/bookmarkd/internal/app"
)

func main() {
	a, err := app.New(context.Background())
	if err != nil {
		log.Fatalf("❌ bookmarkd failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ bookmarkd stopped with error: %v", err)
	}
}
