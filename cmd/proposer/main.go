package main

import "github.com/Rezan-vm/tornado-cash-salary-proposals/cmd/proposer/cmd"

func main() {
	cmd.Execute()
}
