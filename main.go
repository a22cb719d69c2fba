package main

import "github.com/personalmemory/memory-mcp/internal/cli"

func main() {
	cli.Execute()
}
