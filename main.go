package main

import (
	"fmt"

	"lend/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Run(fmt.Sprintf("%s-%s", version, commit))
}
