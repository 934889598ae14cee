package main

import (
	"fmt"
	"os"

	"github.com/bmeg/sitebundle/cmd"
	"github.com/bmeg/sitebundle/logger"
)

func main() {
	err := cmd.RootCmd.Execute()
	logger.Close()
	if err != nil {
		fmt.Println("Error:", err.Error())
		os.Exit(1)
	}
}
