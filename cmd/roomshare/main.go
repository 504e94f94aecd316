package main

import (
	"os"

	"github.com/BecomeWeasel/dapp-project/cmd/roomshare/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
