package main

import "github.com/gaurav-prasanna/printfriendly/cmd"

func main() {
	cmd.Execute()
}
