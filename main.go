package main

import (
	"log"

	"github.com/MominRaza6762/SamraAi/app"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		log.Fatal(err)
	}
}
