package main

import "github.com/2KU77B0N3S/hllrcon/cmd"

func main() {
	cmd.Execute()
}
