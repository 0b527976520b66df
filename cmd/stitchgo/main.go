// stitchgo turns images into cross-stitch patterns using a thread palette.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
