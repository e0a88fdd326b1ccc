package main

import "github.com/mabhi256/objstream/cmd"

func main() {
	cmd.Execute()
}
