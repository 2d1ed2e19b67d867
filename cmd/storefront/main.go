package main

import "github.com/storefront/client/internal/cli"

func main() {
	cli.Execute()
}
