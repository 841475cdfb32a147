package main

import "quake-manager/cmd"

func main() {
	cmd.Execute()
}
