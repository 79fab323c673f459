package main

import (
	"github.com/parascale/graphkit/cmd/graphctl/cmd"
)

func main() {
	cmd.Execute()
}
