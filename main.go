package main

import "github.com/douhashi/kensaku/cmd"

func main() {
	cmd.Execute()
}
