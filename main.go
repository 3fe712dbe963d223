package main

import "envelope_heat_calc/cmd"

func main() {
	cmd.Execute()
}
