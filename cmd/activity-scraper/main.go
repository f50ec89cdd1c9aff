package main

import "github.com/pintuSINGH2000/sraping/internal/cli"

func main() {
	cli.Execute()
}
