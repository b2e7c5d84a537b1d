package main

import "github.com/espdfu/espdfu/cmd/espdfu/cmd"

func main() {
	cmd.Execute()
}
