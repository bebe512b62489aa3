package main

import (
	_ "time/tzdata"

	"hotel-folio/cmd"
)

func main() {
	cmd.Execute()
}
