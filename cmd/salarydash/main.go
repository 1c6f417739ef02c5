package main

import "salarydash/cmd/salarydash/cmd"

func main() {
	cmd.Execute()
}
