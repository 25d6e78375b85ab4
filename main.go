package main

import "go-linngrid/cmd"

func main() {
	cmd.Execute()
}
