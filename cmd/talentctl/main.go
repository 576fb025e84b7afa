// Talentctl is the command-line interface for the talentdb job-market
// demo database.
package main

import "github.com/openhrlab/talentdb/internal/cli"

func main() {
	cli.Execute()
}
