// Package main provides the CLI entrypoint for theme-sync.
package main

func main() {
	Execute()
}
