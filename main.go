package main

import "sparsemv/cmd"

func main() {
	cmd.Execute()
}
