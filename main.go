package main

import "github.com/Aehmlo/ku/cmd"

func main() {
	cmd.Execute()
}
