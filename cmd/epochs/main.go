// Command epochs plays the Earth epochs slideshow in a terminal, a browser,
// an LED matrix or to image files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
