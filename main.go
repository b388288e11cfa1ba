package main

import "github.com/geosamples/igsnimport/cmd"

func main() {
	cmd.Execute()
}
