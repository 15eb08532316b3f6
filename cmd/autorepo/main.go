package main

import "autorepo/internal/cmd"

func main() {
	cmd.Execute()
}
