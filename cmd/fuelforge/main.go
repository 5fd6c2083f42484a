// FuelForge: an interactive fuel blend designer.
//
// Usage:
//
//	fuelforge [--fuel gasoline|diesel] [--verbose] [--quiet]
//	fuelforge predict -f recipe.yaml [--export]
//	fuelforge compare a.yaml b.yaml [--format table|json] [--export]
//	fuelforge catalog [--fuel diesel]
//	fuelforge radar -f recipe.yaml --svg out.svg
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
