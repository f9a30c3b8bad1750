package execshell

import "os/exec"

// ToolLocator probes the execution path for executables.
type ToolLocator interface {
	LookPath(executableName string) (string, error)
}

// OSToolLocator resolves executables through exec.LookPath.
type OSToolLocator struct{}

// NewOSToolLocator constructs a locator backed by the PATH environment variable.
func NewOSToolLocator() OSToolLocator {
	return OSToolLocator{}
}

// LookPath reports the resolved location of the executable.
func (OSToolLocator) LookPath(executableName string) (string, error) {
	return exec.LookPath(executableName)
}

// CommandExists reports whether the locator can resolve the executable.
func CommandExists(locator ToolLocator, executableName string) bool {
	if locator == nil || len(executableName) == 0 {
		return false
	}
	_, lookupError := locator.LookPath(executableName)
	return lookupError == nil
}
