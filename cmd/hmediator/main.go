package main

import "github.com/hubertnosek100/hmediator/internal/adapters/cli"

func main() {
	cli.Execute()
}
