package main

import (
	"context"
	"fmt"
	"os"

	"dsync/cmd/dsync/commands"
)

func main() {
	if err := commands.New().Execute(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
