package main

import "attendance/cmd"

func main() {
	cmd.Execute()
}
