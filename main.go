package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/vhoang/geotutor/cmd"
)

func main() {
	// Optional; a missing .env is not an error.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
