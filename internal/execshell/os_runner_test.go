package execshell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/jmigrate/internal/execshell"
)

const (
	testShellCommandNameConstant = execshell.CommandName("sh")
	testShellScriptFlagConstant  = "-c"
)

func TestOSCommandRunnerCapturesOutputAndExitCode(testInstance *testing.T) {
	testCases := []struct {
		name             string
		script           string
		environment      map[string]string
		expectedOutput   string
		expectedError    string
		expectedExitCode int
	}{
		{
			name:           "success",
			script:         "printf migrated",
			expectedOutput: "migrated",
		},
		{
			name:             "non_zero_exit",
			script:           "printf partial; printf broken 1>&2; exit 3",
			expectedOutput:   "partial",
			expectedError:    "broken",
			expectedExitCode: 3,
		},
		{
			name:           "environment_override",
			script:         "printf \"$GIT_TERMINAL_PROMPT\"",
			environment:    map[string]string{"GIT_TERMINAL_PROMPT": "0"},
			expectedOutput: "0",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			runner := execshell.NewOSCommandRunner()
			executionResult, runError := runner.Run(context.Background(), execshell.ShellCommand{
				Name: testShellCommandNameConstant,
				Details: execshell.CommandDetails{
					Arguments:            []string{testShellScriptFlagConstant, testCase.script},
					WorkingDirectory:     testInstance.TempDir(),
					EnvironmentVariables: testCase.environment,
				},
			})
			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedOutput, executionResult.StandardOutput)
			require.Equal(testInstance, testCase.expectedError, executionResult.StandardError)
			require.Equal(testInstance, testCase.expectedExitCode, executionResult.ExitCode)
		})
	}
}

func TestOSCommandRunnerReportsMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("jmigrate-missing-executable")})
	require.Error(testInstance, runError)
}

func TestOSCommandRunnerReportsCancellation(testInstance *testing.T) {
	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(cancelledContext, execshell.ShellCommand{
		Name:    testShellCommandNameConstant,
		Details: execshell.CommandDetails{Arguments: []string{testShellScriptFlagConstant, "sleep 5"}},
	})
	require.ErrorIs(testInstance, runError, context.Canceled)
}
