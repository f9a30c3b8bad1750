package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/gitrepo"
)

const (
	testRepositoryPathConstant = "/workspace/orders-service"
	testRemoteNameConstant     = "origin"
	testBranchNameConstant     = "feature/java-11-migration-20240102-030405"
)

type recordingGitExecutor struct {
	results         []execshell.ExecutionResult
	errors          []error
	recordedDetails []execshell.CommandDetails
}

func (executor *recordingGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	callIndex := len(executor.recordedDetails)
	executor.recordedDetails = append(executor.recordedDetails, details)

	var result execshell.ExecutionResult
	if callIndex < len(executor.results) {
		result = executor.results[callIndex]
	}
	var executionError error
	if callIndex < len(executor.errors) {
		executionError = executor.errors[callIndex]
	}
	return result, executionError
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
	require.Nil(testInstance, manager)
}

func TestRepositoryManagerBuildsGitArguments(testInstance *testing.T) {
	testCases := []struct {
		name              string
		invoke            func(manager *gitrepo.RepositoryManager) error
		expectedArguments []string
	}{
		{
			name: "create_branch",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.CreateBranch(context.Background(), testRepositoryPathConstant, "backup-before-migration-20240102-030405")
			},
			expectedArguments: []string{"branch", "backup-before-migration-20240102-030405"},
		},
		{
			name: "checkout_branch",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.CheckoutBranch(context.Background(), testRepositoryPathConstant, "main")
			},
			expectedArguments: []string{"checkout", "main"},
		},
		{
			name: "checkout_new_branch",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.CheckoutNewBranch(context.Background(), testRepositoryPathConstant, testBranchNameConstant)
			},
			expectedArguments: []string{"checkout", "-b", testBranchNameConstant},
		},
		{
			name: "pull",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.Pull(context.Background(), testRepositoryPathConstant, testRemoteNameConstant, "main")
			},
			expectedArguments: []string{"pull", testRemoteNameConstant, "main"},
		},
		{
			name: "stage_all",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.StageAll(context.Background(), testRepositoryPathConstant, nil)
			},
			expectedArguments: []string{"add", "-A"},
		},
		{
			name: "stage_all_with_exclusion",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.StageAll(context.Background(), testRepositoryPathConstant, []string{"pom.xml.backup"})
			},
			expectedArguments: []string{"add", "-A", "--", ".", ":(exclude)pom.xml.backup"},
		},
		{
			name: "commit",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.Commit(context.Background(), testRepositoryPathConstant, "Migrate to Java 11")
			},
			expectedArguments: []string{"commit", "-m", "Migrate to Java 11"},
		},
		{
			name: "push",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.Push(context.Background(), testRepositoryPathConstant, testRemoteNameConstant, testBranchNameConstant)
			},
			expectedArguments: []string{"push", testRemoteNameConstant, testBranchNameConstant},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			require.NoError(testInstance, testCase.invoke(manager))
			require.Len(testInstance, executor.recordedDetails, 1)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedDetails[0].Arguments)
			require.Equal(testInstance, testRepositoryPathConstant, executor.recordedDetails[0].WorkingDirectory)
			require.Equal(testInstance, "0", executor.recordedDetails[0].EnvironmentVariables["GIT_TERMINAL_PROMPT"])
		})
	}
}

func TestRepositoryManagerHasStagedChanges(testInstance *testing.T) {
	testCases := []struct {
		name            string
		statusOutput    string
		expectedChanges bool
	}{
		{name: "empty_index", statusOutput: "\n", expectedChanges: false},
		{name: "staged_descriptor", statusOutput: "pom.xml\n", expectedChanges: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: testCase.statusOutput}}}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			hasChanges, statusError := manager.HasStagedChanges(context.Background(), testRepositoryPathConstant)
			require.NoError(testInstance, statusError)
			require.Equal(testInstance, testCase.expectedChanges, hasChanges)
			require.Equal(testInstance, []string{"diff", "--cached", "--name-only"}, executor.recordedDetails[0].Arguments)
		})
	}
}

func TestRepositoryManagerWrapsFailures(testInstance *testing.T) {
	underlyingError := errors.New("exit status 1")
	executor := &recordingGitExecutor{errors: []error{underlyingError}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	pushError := manager.Push(context.Background(), testRepositoryPathConstant, testRemoteNameConstant, testBranchNameConstant)

	var operationError gitrepo.OperationError
	require.ErrorAs(testInstance, pushError, &operationError)
	require.Equal(testInstance, gitrepo.OperationPush, operationError.Operation)
	require.ErrorIs(testInstance, pushError, underlyingError)
}

func TestRepositoryManagerValidatesInputs(testInstance *testing.T) {
	executor := &recordingGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	checkoutError := manager.CheckoutNewBranch(context.Background(), testRepositoryPathConstant, "  ")

	var inputError gitrepo.InvalidInputError
	require.ErrorAs(testInstance, checkoutError, &inputError)
	require.Equal(testInstance, "branch_name", inputError.FieldName)
	require.Empty(testInstance, executor.recordedDetails)
}

func TestRepositoryManagerGetRemoteURL(testInstance *testing.T) {
	executor := &recordingGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "git@github.com:acme/orders-service.git\n"}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	remoteURL, remoteError := manager.GetRemoteURL(context.Background(), testRepositoryPathConstant, testRemoteNameConstant)
	require.NoError(testInstance, remoteError)
	require.Equal(testInstance, "git@github.com:acme/orders-service.git", remoteURL)
	require.Equal(testInstance, []string{"remote", "get-url", testRemoteNameConstant}, executor.recordedDetails[0].Arguments)
}
