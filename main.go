package main

import "github.com/packarr/packarr/cmd"

func main() {
	cmd.Execute()
}
