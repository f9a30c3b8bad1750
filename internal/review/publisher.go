package review

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/githubcli"
	"github.com/temirov/jmigrate/internal/gitrepo"
)

const (
	pushFailedMessageConstant                  = "Push failed; push the branch manually"
	githubCLIMissingMessageConstant            = "GitHub CLI not installed; create the pull request manually"
	pullRequestFailedMessageConstant           = "Could not create pull request automatically"
	pullRequestCreatedMessageConstant          = "Pull request created"
	creatingPullRequestMessageConstant         = "Creating pull request"
	bodyRenderFailedMessageConstant            = "Unable to render pull request body"
	remoteUnresolvedMessageConstant            = "Unable to derive a compare link from the remote"
	branchFieldNameConstant                    = "branch"
	baseBranchFieldNameConstant                = "base_branch"
	remoteFieldNameConstant                    = "remote"
	pullRequestURLFieldNameConstant            = "pull_request_url"
	loggerNotConfiguredMessageConstant         = "review publisher logger not configured"
	pusherNotConfiguredMessageConstant         = "review publisher branch pusher not configured"
	creatorNotConfiguredMessageConstant        = "review publisher pull request creator not configured"
	locatorNotConfiguredMessageConstant        = "review publisher tool locator not configured"
	remoteResolverNotConfiguredMessageConstant = "review publisher remote resolver not configured"
)

var (
	// ErrLoggerNotConfigured indicates the publisher was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrPusherNotConfigured indicates the publisher was constructed without a branch pusher.
	ErrPusherNotConfigured = errors.New(pusherNotConfiguredMessageConstant)
	// ErrCreatorNotConfigured indicates the publisher was constructed without a pull request creator.
	ErrCreatorNotConfigured = errors.New(creatorNotConfiguredMessageConstant)
	// ErrToolLocatorNotConfigured indicates the publisher was constructed without a tool locator.
	ErrToolLocatorNotConfigured = errors.New(locatorNotConfiguredMessageConstant)
	// ErrRemoteResolverNotConfigured indicates the publisher was constructed without a remote resolver.
	ErrRemoteResolverNotConfigured = errors.New(remoteResolverNotConfiguredMessageConstant)
)

// BranchPusher pushes a branch to the configured remote.
type BranchPusher interface {
	Push(executionContext context.Context, branchName string) error
}

// PullRequestCreator opens a pull request.
type PullRequestCreator interface {
	CreatePullRequest(executionContext context.Context, options githubcli.PullRequestCreateOptions) (githubcli.CreatedPullRequest, error)
}

// RemoteResolver reads the URL of a git remote.
type RemoteResolver interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// Dependencies bundles the collaborators of Publisher.
type Dependencies struct {
	Logger             *zap.Logger
	BranchPusher       BranchPusher
	PullRequestCreator PullRequestCreator
	ToolLocator        execshell.ToolLocator
	RemoteResolver     RemoteResolver
}

// Settings configures Publisher.
type Settings struct {
	RepositoryPath string
	RemoteName     string
	BaseBranch     string
	Title          string
	DescriptorFile string
	Recipe         string
}

// RunOutcome carries the workflow facts reflected in the pull request description.
type RunOutcome struct {
	RemediationApplied bool
	TestsPassed        bool
}

// ManualPullRequest lists what the operator needs to open the pull request by hand.
type ManualPullRequest struct {
	Title      string
	BaseBranch string
	HeadBranch string
	CompareURL string
}

// PublishResult describes what Publish achieved.
type PublishResult struct {
	Pushed             bool
	PushError          error
	GitHubCLIAvailable bool
	PullRequestURL     string
	PullRequestCreated bool
	PullRequestError   error
	Manual             *ManualPullRequest
}

// Publisher pushes the migration branch and opens its pull request.
type Publisher struct {
	logger             *zap.Logger
	branchPusher       BranchPusher
	pullRequestCreator PullRequestCreator
	toolLocator        execshell.ToolLocator
	remoteResolver     RemoteResolver
	settings           Settings
}

// NewPublisher constructs a Publisher.
func NewPublisher(dependencies Dependencies, settings Settings) (*Publisher, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.BranchPusher == nil {
		return nil, ErrPusherNotConfigured
	}
	if dependencies.PullRequestCreator == nil {
		return nil, ErrCreatorNotConfigured
	}
	if dependencies.ToolLocator == nil {
		return nil, ErrToolLocatorNotConfigured
	}
	if dependencies.RemoteResolver == nil {
		return nil, ErrRemoteResolverNotConfigured
	}
	return &Publisher{
		logger:             dependencies.Logger,
		branchPusher:       dependencies.BranchPusher,
		pullRequestCreator: dependencies.PullRequestCreator,
		toolLocator:        dependencies.ToolLocator,
		remoteResolver:     dependencies.RemoteResolver,
		settings:           settings,
	}, nil
}

// Publish pushes branchName and opens a pull request with gh when it is on PATH.
// Nothing here is fatal: failures are recorded in the result and the manual
// instructions are filled in whenever the pull request was not created.
func (publisher *Publisher) Publish(executionContext context.Context, branchName string, outcome RunOutcome) PublishResult {
	result := PublishResult{}

	if pushError := publisher.branchPusher.Push(executionContext, branchName); pushError != nil {
		publisher.logger.Warn(pushFailedMessageConstant, zap.String(branchFieldNameConstant, branchName), zap.Error(pushError))
		result.PushError = pushError
	} else {
		result.Pushed = true
	}

	result.GitHubCLIAvailable = execshell.CommandExists(publisher.toolLocator, string(execshell.CommandGitHub))
	if !result.GitHubCLIAvailable {
		publisher.logger.Warn(githubCLIMissingMessageConstant)
		result.Manual = publisher.manualInstructions(executionContext, branchName)
		return result
	}

	pullRequest, creationError := publisher.createPullRequest(executionContext, branchName, outcome)
	if creationError != nil {
		publisher.logger.Warn(pullRequestFailedMessageConstant, zap.String(branchFieldNameConstant, branchName), zap.Error(creationError))
		result.PullRequestError = creationError
		result.Manual = publisher.manualInstructions(executionContext, branchName)
		return result
	}

	result.PullRequestCreated = true
	result.PullRequestURL = pullRequest.URL
	publisher.logger.Info(pullRequestCreatedMessageConstant, zap.String(pullRequestURLFieldNameConstant, pullRequest.URL))
	return result
}

func (publisher *Publisher) createPullRequest(executionContext context.Context, branchName string, outcome RunOutcome) (githubcli.CreatedPullRequest, error) {
	pullRequestBody, renderError := RenderBody(BodyDetails{
		DescriptorFile:     publisher.settings.DescriptorFile,
		Recipe:             publisher.settings.Recipe,
		RemediationApplied: outcome.RemediationApplied,
		TestsPassed:        outcome.TestsPassed,
	})
	if renderError != nil {
		publisher.logger.Error(bodyRenderFailedMessageConstant, zap.Error(renderError))
		return githubcli.CreatedPullRequest{}, renderError
	}

	publisher.logger.Info(
		creatingPullRequestMessageConstant,
		zap.String(branchFieldNameConstant, branchName),
		zap.String(baseBranchFieldNameConstant, publisher.settings.BaseBranch),
	)
	return publisher.pullRequestCreator.CreatePullRequest(executionContext, githubcli.PullRequestCreateOptions{
		Title:            publisher.settings.Title,
		Body:             pullRequestBody,
		BaseBranch:       publisher.settings.BaseBranch,
		HeadBranch:       branchName,
		WorkingDirectory: publisher.settings.RepositoryPath,
	})
}

func (publisher *Publisher) manualInstructions(executionContext context.Context, branchName string) *ManualPullRequest {
	return &ManualPullRequest{
		Title:      publisher.settings.Title,
		BaseBranch: publisher.settings.BaseBranch,
		HeadBranch: branchName,
		CompareURL: publisher.compareURL(executionContext, branchName),
	}
}

// compareURL returns the GitHub compare link for the branch, or an empty string
// when the remote cannot be read or is not hosted on GitHub.
func (publisher *Publisher) compareURL(executionContext context.Context, branchName string) string {
	remoteAddress, remoteError := publisher.remoteResolver.GetRemoteURL(executionContext, publisher.settings.RepositoryPath, publisher.settings.RemoteName)
	if remoteError != nil {
		publisher.logger.Debug(remoteUnresolvedMessageConstant, zap.String(remoteFieldNameConstant, publisher.settings.RemoteName), zap.Error(remoteError))
		return ""
	}
	remoteURL, parseError := gitrepo.ParseRemoteURL(strings.TrimSpace(remoteAddress))
	if parseError != nil || !remoteURL.IsGitHub() {
		publisher.logger.Debug(remoteUnresolvedMessageConstant, zap.String(remoteFieldNameConstant, remoteAddress))
		return ""
	}
	return remoteURL.CompareURL(publisher.settings.BaseBranch, branchName)
}
