package main

import (
	"os"

	"github.com/ITRS-Group/ov-cmdb-sync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
