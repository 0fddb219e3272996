package main

import "github.com/alexiusacademia/gopipe/cmd"

func main() {
	cmd.Execute()
}
