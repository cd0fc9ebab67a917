package main

import (
	"os"

	"github.com/nsxbet/sql-uidx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
