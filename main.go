package main

import (
	"os"

	"github.com/ai-interviewer/interviewer-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
