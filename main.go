// Copyright © 2024 The NeoLisp authors

package main

import "github.com/neolisp/nl/cmd"

func main() {
	cmd.Execute()
}
