// Copyright © 2026 The gripdap authors

package main

import "github.com/rdbg/gripdap/cmd"

func main() {
	cmd.Execute()
}
