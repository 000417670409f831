package main

import "gracket/cmd"

func main() {
	cmd.Execute()
}
