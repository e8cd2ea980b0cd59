package main

import "github.com/alexiusacademia/gonbc/cmd"

func main() {
	cmd.Execute()
}
