package main

import "apiprobe/cli"

func main() {
	cli.Execute()
}
