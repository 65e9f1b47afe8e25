// Command plot generates pen-plotter drawings from the built-in sketches.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
