package main

import (
	"fmt"
	"os"

	"home-guardian/internal/config"
	"home-guardian/internal/dashboard"
)

func main() {
	cfg, err := config.LoadDashboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
	if err := dashboard.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}
