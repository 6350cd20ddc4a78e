//go:build !windows

package cmd

// Stub version, so that enableHyperlinks exists
func enableHyperlinks() bool {
	return true
}
