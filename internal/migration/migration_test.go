package migration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/filesystem"
	"github.com/temirov/jmigrate/internal/migration"
)

const (
	testPluginCoordinatesConstant    = "org.openrewrite.maven:rewrite-maven-plugin"
	testRecipeConstant               = "org.openrewrite.java.migrate.Java8toJava11"
	testDependencyIncludeConstant    = "org.springframework.boot:*"
	testDescriptorWithPluginConstant = `<project><build><plugins><plugin>
<groupId>org.openrewrite.maven</groupId><artifactId>rewrite-maven-plugin</artifactId>
</plugin></plugins></build></project>`
	testDescriptorWithoutPluginConstant = "<project><properties><java.version>11</java.version></properties></project>"
	testRecipeStandardErrorConstant     = "[ERROR] Recipe validation error"
	pluginMissingMessageConstant        = "OpenRewrite plugin not found in project descriptor; running it anyway"
	recipeWarningsMessageConstant       = "OpenRewrite migration completed with warnings"
	remediationCompletedMessageConstant = "Remediation completed"
	recordedRecipeCallConstant          = "rewrite"
	recordedDependencyCallConstant      = "versions"
)

type recordingMavenGoals struct {
	recipeError      error
	dependencyError  error
	recordedCalls    []string
	recordedIncludes []string
	recordedRecipe   string
	recordedPlugin   string
}

func (goals *recordingMavenGoals) RunRewriteRecipe(executionContext context.Context, pluginCoordinates string, recipe string) error {
	goals.recordedCalls = append(goals.recordedCalls, recordedRecipeCallConstant)
	goals.recordedPlugin = pluginCoordinates
	goals.recordedRecipe = recipe
	return goals.recipeError
}

func (goals *recordingMavenGoals) UseLatestReleases(executionContext context.Context, includes []string) error {
	goals.recordedCalls = append(goals.recordedCalls, recordedDependencyCallConstant)
	goals.recordedIncludes = includes
	return goals.dependencyError
}

func recipeFailure() error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandMaven},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: testRecipeStandardErrorConstant},
	}
}

func writeDescriptor(testInstance *testing.T, content string) string {
	testInstance.Helper()
	descriptorPath := filepath.Join(testInstance.TempDir(), "pom.xml")
	require.NoError(testInstance, os.WriteFile(descriptorPath, []byte(content), 0o644))
	return descriptorPath
}

func newInvoker(testInstance *testing.T, logger *zap.Logger, goals *recordingMavenGoals, descriptorPath string) *migration.Invoker {
	testInstance.Helper()
	invoker, creationError := migration.NewInvoker(logger, filesystem.OSFileSystem{}, goals, migration.InvokerSettings{
		DescriptorPath:    descriptorPath,
		PluginCoordinates: testPluginCoordinatesConstant,
		Recipe:            testRecipeConstant,
	})
	require.NoError(testInstance, creationError)
	return invoker
}

func TestInvokerRun(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		descriptorContent      string
		createDescriptor       bool
		recipeError            error
		expectedResult         migration.InvocationResult
		expectedWarningMessage string
	}{
		{
			name:              "plugin_declared_and_recipe_succeeds",
			descriptorContent: testDescriptorWithPluginConstant,
			createDescriptor:  true,
			expectedResult:    migration.InvocationResult{PluginDeclared: true, Succeeded: true},
		},
		{
			name:                   "plugin_missing_still_runs",
			descriptorContent:      testDescriptorWithoutPluginConstant,
			createDescriptor:       true,
			expectedResult:         migration.InvocationResult{PluginDeclared: false, Succeeded: true},
			expectedWarningMessage: pluginMissingMessageConstant,
		},
		{
			name:                   "descriptor_missing_still_runs",
			createDescriptor:       false,
			expectedResult:         migration.InvocationResult{PluginDeclared: false, Succeeded: true},
			expectedWarningMessage: pluginMissingMessageConstant,
		},
		{
			name:                   "recipe_failure_is_a_warning",
			descriptorContent:      testDescriptorWithPluginConstant,
			createDescriptor:       true,
			recipeError:            recipeFailure(),
			expectedResult:         migration.InvocationResult{PluginDeclared: true, Succeeded: false},
			expectedWarningMessage: recipeWarningsMessageConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			descriptorPath := filepath.Join(testInstance.TempDir(), "pom.xml")
			if testCase.createDescriptor {
				descriptorPath = writeDescriptor(testInstance, testCase.descriptorContent)
			}
			observedCore, observedLogs := observer.New(zapcore.DebugLevel)
			goals := &recordingMavenGoals{recipeError: testCase.recipeError}
			invoker := newInvoker(testInstance, zap.New(observedCore), goals, descriptorPath)

			result := invoker.Run(context.Background())

			require.Equal(testInstance, testCase.expectedResult, result)
			require.Equal(testInstance, []string{recordedRecipeCallConstant}, goals.recordedCalls)
			require.Equal(testInstance, testPluginCoordinatesConstant, goals.recordedPlugin)
			require.Equal(testInstance, testRecipeConstant, goals.recordedRecipe)
			if len(testCase.expectedWarningMessage) > 0 {
				warningEntries := observedLogs.FilterMessage(testCase.expectedWarningMessage).All()
				require.Len(testInstance, warningEntries, 1)
				require.Equal(testInstance, zapcore.WarnLevel, warningEntries[0].Level)
			}
		})
	}
}

func TestInvokerLogsRecipeStandardError(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	goals := &recordingMavenGoals{recipeError: recipeFailure()}
	invoker := newInvoker(testInstance, zap.New(observedCore), goals, writeDescriptor(testInstance, testDescriptorWithPluginConstant))

	require.False(testInstance, invoker.RunRecipe(context.Background()))

	warningEntries := observedLogs.FilterMessage(recipeWarningsMessageConstant).All()
	require.Len(testInstance, warningEntries, 1)
	require.Equal(testInstance, testRecipeStandardErrorConstant, warningEntries[0].ContextMap()["standard_error"])
}

func TestPluginArtifactID(testInstance *testing.T) {
	require.Equal(testInstance, "rewrite-maven-plugin", migration.PluginArtifactID(testPluginCoordinatesConstant))
	require.Equal(testInstance, "rewrite-maven-plugin", migration.PluginArtifactID(" rewrite-maven-plugin "))
}

func TestRemediatorAttemptFix(testInstance *testing.T) {
	testCases := []struct {
		name          string
		goals         *recordingMavenGoals
		includes      []string
		expectedCalls []string
	}{
		{
			name:          "recipe_then_dependency_update",
			goals:         &recordingMavenGoals{},
			includes:      []string{testDependencyIncludeConstant},
			expectedCalls: []string{recordedRecipeCallConstant, recordedDependencyCallConstant},
		},
		{
			name:          "failures_do_not_stop_remediation",
			goals:         &recordingMavenGoals{recipeError: recipeFailure(), dependencyError: recipeFailure()},
			includes:      []string{testDependencyIncludeConstant},
			expectedCalls: []string{recordedRecipeCallConstant, recordedDependencyCallConstant},
		},
		{
			name:          "no_includes_skips_dependency_update",
			goals:         &recordingMavenGoals{},
			expectedCalls: []string{recordedRecipeCallConstant},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observedCore, observedLogs := observer.New(zapcore.DebugLevel)
			logger := zap.New(observedCore)
			invoker := newInvoker(testInstance, logger, testCase.goals, writeDescriptor(testInstance, testDescriptorWithPluginConstant))
			remediator, creationError := migration.NewRemediator(logger, invoker, testCase.goals, testCase.includes)
			require.NoError(testInstance, creationError)

			remediator.AttemptFix(context.Background())

			require.Equal(testInstance, testCase.expectedCalls, testCase.goals.recordedCalls)
			if len(testCase.includes) > 0 {
				require.Equal(testInstance, testCase.includes, testCase.goals.recordedIncludes)
			}
			require.Len(testInstance, observedLogs.FilterMessage(remediationCompletedMessageConstant).All(), 1)
		})
	}
}

func TestConstructorsValidateDependencies(testInstance *testing.T) {
	goals := &recordingMavenGoals{}

	_, loggerError := migration.NewInvoker(nil, filesystem.OSFileSystem{}, goals, migration.InvokerSettings{})
	require.ErrorIs(testInstance, loggerError, migration.ErrLoggerNotConfigured)

	_, fileSystemError := migration.NewInvoker(zap.NewNop(), nil, goals, migration.InvokerSettings{})
	require.ErrorIs(testInstance, fileSystemError, migration.ErrFileSystemNotConfigured)

	_, runnerError := migration.NewInvoker(zap.NewNop(), filesystem.OSFileSystem{}, nil, migration.InvokerSettings{})
	require.ErrorIs(testInstance, runnerError, migration.ErrRecipeRunnerNotConfigured)

	invoker, creationError := migration.NewInvoker(zap.NewNop(), filesystem.OSFileSystem{}, goals, migration.InvokerSettings{})
	require.NoError(testInstance, creationError)

	_, remediatorLoggerError := migration.NewRemediator(nil, invoker, goals, nil)
	require.ErrorIs(testInstance, remediatorLoggerError, migration.ErrLoggerNotConfigured)

	_, invokerError := migration.NewRemediator(zap.NewNop(), nil, goals, nil)
	require.ErrorIs(testInstance, invokerError, migration.ErrInvokerNotConfigured)

	_, updaterError := migration.NewRemediator(zap.NewNop(), invoker, nil, nil)
	require.ErrorIs(testInstance, updaterError, migration.ErrDependencyUpdaterNotConfigured)
}
