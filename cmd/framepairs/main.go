package main

import "github.com/dbsmedya/framepairs/cmd/framepairs/cmd"

func main() {
	cmd.Execute()
}
