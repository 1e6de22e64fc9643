// Command pipelog routes messages through a configured set of log sinks from
// the shell, and strips terminal escape sequences from text.
//
// Usage:
//
//	pipelog emit --config logs.yaml --source backup --level WARNING "disk almost full"
//	some-tool | pipelog emit --source some-tool
//	pipelog strip < colored.log > plain.log
package main

import (
	"os"

	"github.com/abyssdigger/pipelog"
	"github.com/abyssdigger/pipelog/colors"
)

func main() {
	router := pipelog.Default()
	defer router.Close()

	if err := newRootCmd(router, os.Stdin, colors.Stdout()).Execute(); err != nil {
		router.Close()
		os.Exit(1)
	}
}
