package main

import "cash-register/internal/cli"

func main() {
	cli.Execute()
}
