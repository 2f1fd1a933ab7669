package main

import "github.com/twiced-technology-gmbh/zenta/cmd"

func main() {
	cmd.Execute()
}
