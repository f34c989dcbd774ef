package main

import (
	"os"

	"github.com/ayane/osarai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
