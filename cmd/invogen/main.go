package main

import "github.com/invogen/invogen-client/internal/cli"

func main() {
	cli.Execute()
}
