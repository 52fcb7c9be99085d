package main

import "github.com/inovacc/gameshelf/cmd"

func main() {
	cmd.Execute()
}
