package main

import "github.com/treebornwood/voicedeskk/cmd"

func main() {
	cmd.Execute()
}
