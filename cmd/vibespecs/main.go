package main

import "github.com/vibespecs/vibespecs/cmd/vibespecs/cmd"

func main() {
	cmd.Execute()
}
