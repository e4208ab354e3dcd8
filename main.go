package main

import "github.com/gatewayops/status-index/cmd"

func main() {
	cmd.Execute()
}
