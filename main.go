package main

import "github.com/ValentinKolb/dFarm/cmd"

func main() {
	cmd.Execute()
}
