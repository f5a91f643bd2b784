package main

import "github.com/aalvaropc/sumlist/internal/cli"

func main() {
	cli.Execute()
}
