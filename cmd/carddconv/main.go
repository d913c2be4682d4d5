package main

import "carddconv/cmd/carddconv/cmd"

func main() {
	cmd.Execute()
}
