// Command trackers runs the console record trackers.
package main

import "github.com/mesh-intelligence/trackers/internal/cli"

func main() {
	cli.Execute()
}
