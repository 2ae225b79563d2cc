package main

import (
	"os"

	"github.com/JOBrien987/ProcessRoaster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
