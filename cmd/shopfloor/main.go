// ShopFloor: job-card dependency analysis and raw-material cut planning.
//
// Build:
//   go build -o shopfloor ./cmd/shopfloor
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o shopfloor.exe ./cmd/shopfloor

package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/ShopFloor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
