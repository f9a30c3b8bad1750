package prerequisites_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/filesystem"
	"github.com/temirov/jmigrate/internal/prerequisites"
)

const (
	testJavaVersionBannerConstant = "openjdk version \"11.0.21\" 2023-10-17\nOpenJDK Runtime Environment (build 11.0.21+9)\n"
	testFoundJavaMessageConstant  = "Found Java"
)

type stubToolLocator struct {
	availableExecutables map[string]bool
	probedExecutables    []string
}

func (locator *stubToolLocator) LookPath(executableName string) (string, error) {
	locator.probedExecutables = append(locator.probedExecutables, executableName)
	if locator.availableExecutables[executableName] {
		return "/usr/bin/" + executableName, nil
	}
	return "", errors.New("not found")
}

type stubJavaExecutor struct {
	result         execshell.ExecutionResult
	executionError error
	invocations    int
}

func (executor *stubJavaExecutor) ExecuteJava(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.invocations++
	return executor.result, executor.executionError
}

func allToolsAvailable() map[string]bool {
	return map[string]bool{"java": true, "mvn": true, "git": true}
}

func TestNewCheckerValidatesDependencies(testInstance *testing.T) {
	validDependencies := prerequisites.Dependencies{
		Logger:       zap.NewNop(),
		ToolLocator:  &stubToolLocator{},
		JavaExecutor: &stubJavaExecutor{},
		FileSystem:   filesystem.OSFileSystem{},
	}

	testCases := []struct {
		name          string
		mutate        func(dependencies *prerequisites.Dependencies)
		expectedError error
	}{
		{name: "logger", mutate: func(dependencies *prerequisites.Dependencies) { dependencies.Logger = nil }, expectedError: prerequisites.ErrLoggerNotConfigured},
		{name: "locator", mutate: func(dependencies *prerequisites.Dependencies) { dependencies.ToolLocator = nil }, expectedError: prerequisites.ErrToolLocatorNotConfigured},
		{name: "java_executor", mutate: func(dependencies *prerequisites.Dependencies) { dependencies.JavaExecutor = nil }, expectedError: prerequisites.ErrJavaExecutorNotConfigured},
		{name: "file_system", mutate: func(dependencies *prerequisites.Dependencies) { dependencies.FileSystem = nil }, expectedError: prerequisites.ErrFileSystemNotConfigured},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			dependencies := validDependencies
			testCase.mutate(&dependencies)
			checker, creationError := prerequisites.NewChecker(dependencies, testInstance.TempDir())
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
			require.Nil(testInstance, checker)
		})
	}
}

func TestCheckerCheck(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		availableExecutables map[string]bool
		projectExists        bool
		expectedSatisfied    bool
		expectedReason       string
		expectedProbes       []string
		expectJavaInvocation bool
	}{
		{
			name:                 "all_met",
			availableExecutables: allToolsAvailable(),
			projectExists:        true,
			expectedSatisfied:    true,
			expectedProbes:       []string{"java", "mvn", "git"},
			expectJavaInvocation: true,
		},
		{
			name:                 "java_missing_stops_at_first_tool",
			availableExecutables: map[string]bool{"mvn": true, "git": true},
			projectExists:        true,
			expectedReason:       "Java is not installed. Please install Java 11.",
			expectedProbes:       []string{"java"},
		},
		{
			name:                 "maven_missing",
			availableExecutables: map[string]bool{"java": true, "git": true},
			projectExists:        true,
			expectedReason:       "Maven is not installed. Please install Maven.",
			expectedProbes:       []string{"java", "mvn"},
		},
		{
			name:                 "git_missing",
			availableExecutables: map[string]bool{"java": true, "mvn": true},
			projectExists:        true,
			expectedReason:       "Git is not installed. Please install Git.",
			expectedProbes:       []string{"java", "mvn", "git"},
		},
		{
			name:                 "project_missing",
			availableExecutables: allToolsAvailable(),
			projectExists:        false,
			expectedProbes:       []string{"java", "mvn", "git"},
			expectJavaInvocation: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			projectPath := testInstance.TempDir()
			if !testCase.projectExists {
				projectPath = filepath.Join(projectPath, "missing-project")
			}

			locator := &stubToolLocator{availableExecutables: testCase.availableExecutables}
			javaExecutor := &stubJavaExecutor{result: execshell.ExecutionResult{StandardError: testJavaVersionBannerConstant}}
			checker, creationError := prerequisites.NewChecker(prerequisites.Dependencies{
				Logger:       zap.NewNop(),
				ToolLocator:  locator,
				JavaExecutor: javaExecutor,
				FileSystem:   filesystem.OSFileSystem{},
			}, projectPath)
			require.NoError(testInstance, creationError)

			report, checkError := checker.Check(context.Background())
			require.NoError(testInstance, checkError)
			require.Equal(testInstance, testCase.expectedSatisfied, report.Satisfied())
			require.Equal(testInstance, testCase.expectedProbes, locator.probedExecutables)
			require.Equal(testInstance, testCase.expectJavaInvocation, javaExecutor.invocations == 1)

			expectedReason := testCase.expectedReason
			if !testCase.projectExists {
				expectedReason = "Project directory not found: " + projectPath
			}
			require.Equal(testInstance, expectedReason, report.FailureReason())
		})
	}
}

func TestCheckerLogsDetectedJavaVersion(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.DebugLevel)
	checker, creationError := prerequisites.NewChecker(prerequisites.Dependencies{
		Logger:       zap.New(observerCore),
		ToolLocator:  &stubToolLocator{availableExecutables: allToolsAvailable()},
		JavaExecutor: &stubJavaExecutor{result: execshell.ExecutionResult{StandardError: testJavaVersionBannerConstant}},
		FileSystem:   filesystem.OSFileSystem{},
	}, testInstance.TempDir())
	require.NoError(testInstance, creationError)

	report, checkError := checker.Check(context.Background())
	require.NoError(testInstance, checkError)
	require.Equal(testInstance, "11.0.21", report.JavaVersion)

	javaLogs := observerLogs.FilterMessage(testFoundJavaMessageConstant).All()
	require.Len(testInstance, javaLogs, 1)
	require.Equal(testInstance, "11.0.21", javaLogs[0].ContextMap()["java_version"])
}

func TestCheckerIgnoresJavaVersionFailure(testInstance *testing.T) {
	checker, creationError := prerequisites.NewChecker(prerequisites.Dependencies{
		Logger:       zap.NewNop(),
		ToolLocator:  &stubToolLocator{availableExecutables: allToolsAvailable()},
		JavaExecutor: &stubJavaExecutor{executionError: errors.New("java crashed")},
		FileSystem:   filesystem.OSFileSystem{},
	}, testInstance.TempDir())
	require.NoError(testInstance, creationError)

	report, checkError := checker.Check(context.Background())
	require.NoError(testInstance, checkError)
	require.True(testInstance, report.Satisfied())
	require.Empty(testInstance, report.JavaVersion)
}

func TestParseJavaVersion(testInstance *testing.T) {
	testCases := []struct {
		name            string
		versionLine     string
		expectedVersion string
	}{
		{name: "openjdk", versionLine: "openjdk version \"11.0.21\" 2023-10-17", expectedVersion: "11.0.21"},
		{name: "legacy", versionLine: "java version \"1.8.0_392\"", expectedVersion: "1.8.0_392"},
		{name: "unquoted", versionLine: "java 17", expectedVersion: "unknown version"},
		{name: "empty_quotes", versionLine: "java version \"\"", expectedVersion: "unknown version"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedVersion, prerequisites.ParseJavaVersion(testCase.versionLine))
		})
	}
}
