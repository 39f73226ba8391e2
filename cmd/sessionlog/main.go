// Command sessionlog renders log lines into complete session documents
// with any registered formatting engine.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
