package main

import "github.com/avendel/catalog-api/internal/cli"

func main() {
	cli.Execute()
}
