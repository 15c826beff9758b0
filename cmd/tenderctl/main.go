// Command tenderctl runs the proposal validation, scoring and comparison
// rules locally against template and proposal files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
