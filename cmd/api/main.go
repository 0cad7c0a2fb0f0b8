package main

import "github.com/georgemunganga/product-manager/cmd/api/commands"

func main() {
	commands.Execute()
}
