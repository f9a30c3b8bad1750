package maven_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/maven"
)

const (
	testProjectPathConstant   = "/workspace/orders-service"
	testRewritePluginConstant = "org.openrewrite.maven:rewrite-maven-plugin"
	testRecipeConstant        = "org.openrewrite.java.migrate.Java8toJava11"
)

type recordingMavenExecutor struct {
	executionError  error
	recordedDetails []execshell.CommandDetails
}

func (executor *recordingMavenExecutor) ExecuteMaven(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return execshell.ExecutionResult{}, executor.executionError
}

func TestNewClientValidation(testInstance *testing.T) {
	_, executorError := maven.NewClient(nil, testProjectPathConstant)
	require.ErrorIs(testInstance, executorError, maven.ErrExecutorNotConfigured)

	_, pathError := maven.NewClient(&recordingMavenExecutor{}, " ")
	require.ErrorIs(testInstance, pathError, maven.ErrProjectPathRequired)
}

func TestClientGoalArguments(testInstance *testing.T) {
	testCases := []struct {
		name              string
		invoke            func(client *maven.Client) error
		expectedArguments []string
	}{
		{
			name: "rewrite_recipe",
			invoke: func(client *maven.Client) error {
				return client.RunRewriteRecipe(context.Background(), testRewritePluginConstant, testRecipeConstant)
			},
			expectedArguments: []string{
				"-U",
				"org.openrewrite.maven:rewrite-maven-plugin:run",
				"-Drewrite.activeRecipes=org.openrewrite.java.migrate.Java8toJava11",
			},
		},
		{
			name: "use_latest_releases",
			invoke: func(client *maven.Client) error {
				return client.UseLatestReleases(context.Background(), []string{"org.springframework.boot:*", "com.fasterxml.jackson.core:*"})
			},
			expectedArguments: []string{
				"versions:use-latest-releases",
				"-Dincludes=org.springframework.boot:*,com.fasterxml.jackson.core:*",
				"-DallowMajorUpdates=false",
			},
		},
		{
			name: "clean_install",
			invoke: func(client *maven.Client) error {
				return client.CleanInstallSkippingTests(context.Background())
			},
			expectedArguments: []string{"clean", "install", "-DskipTests"},
		},
		{
			name: "test",
			invoke: func(client *maven.Client) error {
				return client.Test(context.Background())
			},
			expectedArguments: []string{"test"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingMavenExecutor{}
			client, creationError := maven.NewClient(executor, testProjectPathConstant)
			require.NoError(testInstance, creationError)

			require.NoError(testInstance, testCase.invoke(client))
			require.Len(testInstance, executor.recordedDetails, 1)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedDetails[0].Arguments)
			require.Equal(testInstance, testProjectPathConstant, executor.recordedDetails[0].WorkingDirectory)
		})
	}
}

func TestClientInputValidation(testInstance *testing.T) {
	executor := &recordingMavenExecutor{}
	client, creationError := maven.NewClient(executor, testProjectPathConstant)
	require.NoError(testInstance, creationError)

	require.ErrorIs(testInstance, client.RunRewriteRecipe(context.Background(), "", testRecipeConstant), maven.ErrPluginRequired)
	require.ErrorIs(testInstance, client.RunRewriteRecipe(context.Background(), testRewritePluginConstant, " "), maven.ErrRecipeRequired)
	require.ErrorIs(testInstance, client.UseLatestReleases(context.Background(), nil), maven.ErrIncludesRequired)
	require.Empty(testInstance, executor.recordedDetails)
}

func TestClientFailureCarriesStandardError(testInstance *testing.T) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandMaven, Details: execshell.CommandDetails{Arguments: []string{"test"}}},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: "\nTests run: 4, Failures: 1\n"},
	}
	client, creationError := maven.NewClient(&recordingMavenExecutor{executionError: failure}, testProjectPathConstant)
	require.NoError(testInstance, creationError)

	testError := client.Test(context.Background())

	var goalError maven.GoalError
	require.ErrorAs(testInstance, testError, &goalError)
	require.Equal(testInstance, maven.Goal("test"), goalError.Goal)
	require.Equal(testInstance, "Tests run: 4, Failures: 1", maven.StandardError(testError))
	require.Empty(testInstance, maven.StandardError(errors.New("plain")))
}
