package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

var (
	uiOut   io.Writer = os.Stdout
	noColor           = os.Getenv("NO_COLOR") != ""
)

func printLine(color, prefix, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if noColor {
		fmt.Fprintln(uiOut, prefix+msg)
		return
	}
	fmt.Fprintln(uiOut, color+prefix+msg+colorReset)
}

func PrintInfo(format string, a ...interface{}) {
	printLine(colorBlue, "ℹ ", format, a...)
}

func PrintSuccess(format string, a ...interface{}) {
	printLine(colorGreen, "✓ ", format, a...)
}

func PrintError(format string, a ...interface{}) {
	printLine(colorRed, "✗ ", format, a...)
}

func PrintHeader(title string) {
	fmt.Fprintln(uiOut)
	printLine(colorYellow, "", "=== %s ===", title)
}
