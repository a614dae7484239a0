package main

import "github.com/beacheats/beachsync/cmd"

func main() {
	cmd.Execute()
}
