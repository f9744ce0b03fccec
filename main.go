package main

import (
	"os"

	"github.com/yiApollo/yttx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
