package main

import "github.com/kamusis/lcdb/cmd"

func main() {
	cmd.Execute()
}
