package main

import (
	"fmt"
	"os"

	"github.com/gnzdotmx/captionflow/cmd"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists; real environment variables win
	_ = godotenv.Load()
}

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
