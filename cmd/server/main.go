package main

import "passvault/cmd/server/cmd"

func main() {
	cmd.Execute()
}
