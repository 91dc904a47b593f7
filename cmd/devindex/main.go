package main

import "github.com/kailas-cloud/devindex/internal/cli"

func main() {
	cli.Execute()
}
