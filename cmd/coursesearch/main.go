// Command coursesearch serves constrained semantic search over a course catalog.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
