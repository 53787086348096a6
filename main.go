package main

import "github.com/umalmyha/ledger/cmd"

func main() {
	cmd.Execute()
}
