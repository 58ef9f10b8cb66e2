package main

import "royalemeta/cmd"

func main() {
	cmd.Execute()
}
