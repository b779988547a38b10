package main

import "github.com/amterp/dairy/internal/cli"

func main() {
	cli.Run()
}
