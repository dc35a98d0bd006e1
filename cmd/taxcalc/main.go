// Package main provides the taxcalc command line tool.
//
// taxcalc estimates federal income tax for a return described in YAML.
//
// Usage:
//
//	taxcalc init my_return.yaml
//	taxcalc calculate my_return.yaml --format markdown
//	taxcalc batch returns/*.yaml --save
//
// See --help for all available options.
package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()
	Execute()
}
