package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/jmigrate/internal/execshell"
)

type stubToolLocator struct {
	availableExecutables map[string]string
	probedExecutables    []string
}

func (locator *stubToolLocator) LookPath(executableName string) (string, error) {
	locator.probedExecutables = append(locator.probedExecutables, executableName)
	resolvedPath, available := locator.availableExecutables[executableName]
	if !available {
		return "", errors.New("executable file not found in $PATH")
	}
	return resolvedPath, nil
}

func TestCommandExists(testInstance *testing.T) {
	locator := &stubToolLocator{availableExecutables: map[string]string{"git": "/usr/bin/git"}}

	testCases := []struct {
		name           string
		locator        execshell.ToolLocator
		executableName string
		expectedExists bool
	}{
		{name: "present", locator: locator, executableName: "git", expectedExists: true},
		{name: "absent", locator: locator, executableName: "gh", expectedExists: false},
		{name: "empty_name", locator: locator, executableName: "", expectedExists: false},
		{name: "nil_locator", locator: nil, executableName: "git", expectedExists: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedExists, execshell.CommandExists(testCase.locator, testCase.executableName))
		})
	}
	require.Equal(testInstance, []string{"git", "gh"}, locator.probedExecutables)
}
