// Package main is the CLI entrypoint for turncue.
package main

func main() {
	Execute()
}
