package main

import (
	"fmt"
	"os"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "surveyctl:", err)
		os.Exit(1)
	}
}
