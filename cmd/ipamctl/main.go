package main

import "github.com/mfreund/ipam-console/internal/cli"

func main() {
	cli.Execute()
}
