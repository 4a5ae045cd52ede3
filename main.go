package main

import "fisiocatania_backend/internals/commands"

func main() {
	commands.Execute()
}
