package githubcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/jmigrate/internal/execshell"
)

const (
	pullRequestSubcommandConstant           = "pr"
	createSubcommandConstant                = "create"
	titleFlagConstant                       = "--title"
	bodyFlagConstant                        = "--body"
	baseFlagConstant                        = "--base"
	headFlagConstant                        = "--head"
	titleFieldNameConstant                  = "title"
	baseBranchFieldNameConstant             = "base_branch"
	headBranchFieldNameConstant             = "head_branch"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	pullRequestURLPrefixConstant            = "https://"
	createPullRequestOperationNameConstant  = OperationName("CreatePullRequest")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// PullRequestCreateOptions describes the pull request to open.
type PullRequestCreateOptions struct {
	Title            string
	Body             string
	BaseBranch       string
	HeadBranch       string
	WorkingDirectory string
}

// CreatedPullRequest captures what gh reported after creating a pull request.
type CreatedPullRequest struct {
	URL string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// CreatePullRequest opens a pull request with gh pr create.
func (client *Client) CreatePullRequest(executionContext context.Context, options PullRequestCreateOptions) (CreatedPullRequest, error) {
	title := strings.TrimSpace(options.Title)
	if len(title) == 0 {
		return CreatedPullRequest{}, InvalidInputError{FieldName: titleFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.BaseBranch)) == 0 {
		return CreatedPullRequest{}, InvalidInputError{FieldName: baseBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.HeadBranch)) == 0 {
		return CreatedPullRequest{}, InvalidInputError{FieldName: headBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			createSubcommandConstant,
			titleFlagConstant,
			title,
			bodyFlagConstant,
			options.Body,
			baseFlagConstant,
			options.BaseBranch,
			headFlagConstant,
			options.HeadBranch,
		},
		WorkingDirectory: options.WorkingDirectory,
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return CreatedPullRequest{}, OperationError{Operation: createPullRequestOperationNameConstant, Cause: executionError}
	}

	return CreatedPullRequest{URL: extractPullRequestURL(executionResult.StandardOutput)}, nil
}

// extractPullRequestURL returns the last https line gh printed, which is the pull request address.
func extractPullRequestURL(standardOutput string) string {
	outputLines := strings.Split(standardOutput, "\n")
	for index := len(outputLines) - 1; index >= 0; index-- {
		trimmedLine := strings.TrimSpace(outputLines[index])
		if strings.HasPrefix(trimmedLine, pullRequestURLPrefixConstant) {
			return trimmedLine
		}
	}
	return ""
}
