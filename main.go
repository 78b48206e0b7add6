package main

import "github.com/futureproof/retirement-planner/cmd"

func main() {
	cmd.Execute()
}
