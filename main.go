package main

import (
	"github.com/dyike/SharpeGo/internal/cli"
)

func main() {
	cli.Run()
}
