package main

import "nb-init/cmd"

func main() {
	cmd.Execute()
}
