package cmd

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableHyperlinks turns on virtual terminal processing, so that the OSC 8
// escape sequence renders as a clickable link instead of garbage.
func enableHyperlinks() bool {
	handle := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
