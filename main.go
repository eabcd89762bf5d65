package main

import "github.com/Tejas-00/wake-up-quests-alarm/cmd"

func main() {
	cmd.Execute()
}
