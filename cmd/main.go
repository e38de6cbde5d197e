package main

import (
	cmd "github.com/kerbaras/enjoi/cmd/enjoi"
)

func main() {
	cmd.Execute()
}
