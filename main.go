package main

import "reelhub/cmd"

func main() {
	cmd.Execute()
}
