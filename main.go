package main

import "github.com/mediaforge/mediaforge/cmd"

func main() {
	cmd.Execute()
}
