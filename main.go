package main

import "github.com/user/clark/cmd"

func main() {
	cmd.Execute()
}
