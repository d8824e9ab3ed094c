package main

import "github.com/Tiliavir/diary/cmd"

func main() {
	cmd.Execute()
}
