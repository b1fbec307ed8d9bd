package main

import (
	"fmt"
	"os"

	"github.com/iliyamo/venue-ticket-service/cmd/venuectl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "venuectl:", err)
		os.Exit(1)
	}
}
