package main

import "github.com/mouse-blink/sjv/cmd"

func main() {
	cmd.Execute()
}
