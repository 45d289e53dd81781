package main

import "github.com/walkerscm/codemerge/internal/cli"

func main() {
	cli.Execute()
}
