package main

import "optiscalerctl/cmd"

func main() {
	cmd.Execute()
}
