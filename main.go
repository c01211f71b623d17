package main

import "mood-planner.com/mood-planner/cmd"

func main() {
	cmd.Execute()
}
