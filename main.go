package main

import (
	"os"

	"github.com/qihuang/bianzheng/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
