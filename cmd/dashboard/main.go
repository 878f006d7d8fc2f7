package main

import (
	"fmt"
	"os"

	"github.com/dkm94/invoice-dashboard/internal/cli"
)

var version = "dev"

// @title           Invoice Dashboard API
// @version         1.0
// @description     Authenticated invoice management with session-gated dashboard routes.
// @BasePath        /
func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
