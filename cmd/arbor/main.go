package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
)

const generalErrorExitCode = 1

func main() {
	cmd := newRootCmd(&app{
		fs:      osfs.New("/"),
		resolve: filepath.Abs,
	})

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERR:", err)
		os.Exit(generalErrorExitCode)
	}
}
