package main

import "github.com/naka-gawa/starz/cmd"

func main() {
	cmd.Execute()
}
