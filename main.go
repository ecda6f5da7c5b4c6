package main

import "github.com/zippyzappypixy/fast-license-checker/cmd"

func main() {
	cmd.Execute()
}
