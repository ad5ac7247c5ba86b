package main

import "github.com/theirongolddev/studioplan/cmd"

func main() {
	cmd.Execute()
}
