package main

import "github.com/lepinkainen/cityguide/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
