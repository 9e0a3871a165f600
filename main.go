package main

import "github.com/custodia-labs/lexica-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
