package main

import "github.com/expensecontrol/api/cmd"

func main() {
	cmd.Execute()
}
