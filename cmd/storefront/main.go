package main

import (
	"fmt"
	"os"

	"github.com/andyle182810/storefront/config"
	"github.com/andyle182810/storefront/internal/cli"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	cli.Execute(cfg)
}
