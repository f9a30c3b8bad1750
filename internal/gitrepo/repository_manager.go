package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/jmigrate/internal/execshell"
)

const (
	gitBranchSubcommandConstant          = "branch"
	gitCheckoutSubcommandConstant        = "checkout"
	gitCreateBranchFlagConstant          = "-b"
	gitPullSubcommandConstant            = "pull"
	gitPushSubcommandConstant            = "push"
	gitAddSubcommandConstant             = "add"
	gitAddAllFlagConstant                = "-A"
	gitPathspecSeparatorConstant         = "--"
	gitCurrentDirectoryPathspecConstant  = "."
	gitExcludePathspecTemplateConstant   = ":(exclude)%s"
	gitDiffSubcommandConstant            = "diff"
	gitCachedFlagConstant                = "--cached"
	gitNameOnlyFlagConstant              = "--name-only"
	gitCommitSubcommandConstant          = "commit"
	gitMessageFlagConstant               = "-m"
	gitRemoteSubcommandConstant          = "remote"
	gitGetURLSubcommandConstant          = "get-url"
	gitTerminalPromptEnvironmentConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant    = "0"
	executorNotConfiguredMessageConstant = "git executor not configured"
	repositoryPathFieldNameConstant      = "repository_path"
	branchNameFieldNameConstant          = "branch_name"
	remoteNameFieldNameConstant          = "remote_name"
	commitMessageFieldNameConstant       = "commit_message"
	requiredFieldMessageConstant         = "must not be empty"
	invalidInputTemplateConstant         = "%s %s"
	operationErrorTemplateConstant       = "%s failed: %v"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// InvalidInputError reports a missing or malformed argument.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationName identifies a repository operation.
type OperationName string

// Repository operations surfaced in OperationError.
const (
	OperationCreateBranch      OperationName = OperationName("create branch")
	OperationCheckoutBranch    OperationName = OperationName("checkout branch")
	OperationCheckoutNewBranch OperationName = OperationName("create and checkout branch")
	OperationPull              OperationName = OperationName("pull")
	OperationStage             OperationName = OperationName("stage changes")
	OperationStatus            OperationName = OperationName("read staged changes")
	OperationCommit            OperationName = OperationName("commit")
	OperationPush              OperationName = OperationName("push")
	OperationRemoteURL         OperationName = OperationName("read remote url")
)

// OperationError wraps a failed git invocation.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the failed operation.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying failure.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// RepositoryManager performs git operations against a single working tree path.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CreateBranch creates branchName at HEAD without switching to it.
func (manager *RepositoryManager) CreateBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	return manager.run(executionContext, OperationCreateBranch, repositoryPath, gitBranchSubcommandConstant, branchName)
}

// CheckoutBranch switches the working tree to an existing branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	return manager.run(executionContext, OperationCheckoutBranch, repositoryPath, gitCheckoutSubcommandConstant, branchName)
}

// CheckoutNewBranch creates branchName and switches to it.
func (manager *RepositoryManager) CheckoutNewBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	return manager.run(executionContext, OperationCheckoutNewBranch, repositoryPath, gitCheckoutSubcommandConstant, gitCreateBranchFlagConstant, branchName)
}

// Pull fetches and merges branchName from remoteName into the current branch.
func (manager *RepositoryManager) Pull(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, remoteNameFieldNameConstant, remoteName, branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	return manager.run(executionContext, OperationPull, repositoryPath, gitPullSubcommandConstant, remoteName, branchName)
}

// StageAll stages every change in the working tree except excludedPaths.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string, excludedPaths []string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return validationError
	}

	arguments := []string{gitAddSubcommandConstant, gitAddAllFlagConstant}
	if len(excludedPaths) > 0 {
		arguments = append(arguments, gitPathspecSeparatorConstant, gitCurrentDirectoryPathspecConstant)
		for _, excludedPath := range excludedPaths {
			arguments = append(arguments, fmt.Sprintf(gitExcludePathspecTemplateConstant, excludedPath))
		}
	}
	return manager.run(executionContext, OperationStage, repositoryPath, arguments...)
}

// HasStagedChanges reports whether the index differs from HEAD. Untracked and
// unstaged files are ignored because git commit would not record them.
func (manager *RepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return false, validationError
	}
	executionResult, executionError := manager.execute(executionContext, repositoryPath, gitDiffSubcommandConstant, gitCachedFlagConstant, gitNameOnlyFlagConstant)
	if executionError != nil {
		return false, OperationError{Operation: OperationStatus, Cause: executionError}
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// Commit records the staged changes with commitMessage.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, commitMessageFieldNameConstant, commitMessage); validationError != nil {
		return validationError
	}
	return manager.run(executionContext, OperationCommit, repositoryPath, gitCommitSubcommandConstant, gitMessageFlagConstant, commitMessage)
}

// Push publishes branchName to remoteName.
func (manager *RepositoryManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, remoteNameFieldNameConstant, remoteName, branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	return manager.run(executionContext, OperationPush, repositoryPath, gitPushSubcommandConstant, remoteName, branchName)
}

// GetRemoteURL returns the fetch URL configured for remoteName.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, remoteNameFieldNameConstant, remoteName); validationError != nil {
		return "", validationError
	}
	executionResult, executionError := manager.execute(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", OperationError{Operation: OperationRemoteURL, Cause: executionError}
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func (manager *RepositoryManager) run(executionContext context.Context, operation OperationName, repositoryPath string, arguments ...string) error {
	if _, executionError := manager.execute(executionContext, repositoryPath, arguments...); executionError != nil {
		return OperationError{Operation: operation, Cause: executionError}
	}
	return nil
}

func (manager *RepositoryManager) execute(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentConstant: gitTerminalPromptDisabledConstant},
	})
}

// requireValues validates alternating field name and value pairs.
func requireValues(fieldNamesAndValues ...string) error {
	for index := 0; index+1 < len(fieldNamesAndValues); index += 2 {
		if len(strings.TrimSpace(fieldNamesAndValues[index+1])) == 0 {
			return InvalidInputError{FieldName: fieldNamesAndValues[index], Message: requiredFieldMessageConstant}
		}
	}
	return nil
}
