// Package main provides the entry point for the passat CLI.
//
// Passat audits the quality of password populations: it classifies each
// password in a leaked-credential dump by length, shape, charset taxonomy,
// and fuzzy dictionary category, and aggregates the results into frequency
// statistics.
//
// Usage:
//
//	passat audit rockyou.txt
//	cat dump.txt | passat audit
//
// See --help for all available options.
package main

// main is the entry point for passat.
func main() {
	Execute()
}
