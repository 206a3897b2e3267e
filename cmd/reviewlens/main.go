package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/reviewlens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrSubmissionFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
