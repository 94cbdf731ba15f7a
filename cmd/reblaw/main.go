package main

import (
	"os"

	"github.com/reblaw/legal-api/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
