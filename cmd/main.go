// cmd/main.go
package main

import cmd "github.com/mwiater/searchbench/cmd/searchbench"

// main starts the searchbench CLI application by delegating to the
// cobra root command defined in the searchbench package.
func main() {
	cmd.Execute()
}
