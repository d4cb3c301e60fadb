package main

import (
	"sift.dev/cli/internal/interfaces/cli"
)

func main() {
	container := cli.NewContainer()
	cli.Execute(container)
}
