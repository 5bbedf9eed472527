package main

import (
	"github.com/petrarca/file-summary/internal/cmd"
)

func main() {
	cmd.Execute()
}
