package main

import "github.com/aqtareen/Taqreeb/cmd/server/cmd"

func main() {
	cmd.Execute()
}
