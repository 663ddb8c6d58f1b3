// Package main provides the diary CLI.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(&app{})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "diary:", err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitSysError)
	}
}
