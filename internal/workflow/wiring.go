package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/branching"
	"github.com/temirov/jmigrate/internal/build"
	"github.com/temirov/jmigrate/internal/descriptor"
	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/filesystem"
	"github.com/temirov/jmigrate/internal/githubcli"
	"github.com/temirov/jmigrate/internal/gitrepo"
	"github.com/temirov/jmigrate/internal/maven"
	"github.com/temirov/jmigrate/internal/migration"
	"github.com/temirov/jmigrate/internal/prerequisites"
	"github.com/temirov/jmigrate/internal/prompt"
	"github.com/temirov/jmigrate/internal/review"
	"github.com/temirov/jmigrate/internal/ui"
)

// CommandExecutor runs every external tool the workflow depends on.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteMaven(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteJava(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Runtime carries the process-level collaborators the workflow components are built from.
type Runtime struct {
	Logger          *zap.Logger
	Console         *ui.Console
	Prompter        prompt.ConfirmationPrompter
	CommandExecutor CommandExecutor
	ToolLocator     execshell.ToolLocator
	FileSystem      filesystem.FileSystem
	Clock           branching.Clock
}

// NewPrerequisiteChecker builds the checker for the configured project.
func NewPrerequisiteChecker(configuration Configuration, runtime Runtime) (*prerequisites.Checker, error) {
	return prerequisites.NewChecker(prerequisites.Dependencies{
		Logger:       runtime.Logger,
		ToolLocator:  runtime.ToolLocator,
		JavaExecutor: runtime.CommandExecutor,
		FileSystem:   runtime.FileSystem,
	}, configuration.ProjectPath)
}

// BuildDependencies constructs every workflow component from configuration and runtime.
func BuildDependencies(configuration Configuration, runtime Runtime) (Dependencies, error) {
	if runtime.CommandExecutor == nil {
		return Dependencies{}, missingDependencyError(commandExecutorDependencyNameConstant)
	}
	configuration = configuration.Sanitize()

	prerequisiteChecker, checkerError := NewPrerequisiteChecker(configuration, runtime)
	if checkerError != nil {
		return Dependencies{}, checkerError
	}

	repositoryManager, repositoryError := gitrepo.NewRepositoryManager(runtime.CommandExecutor)
	if repositoryError != nil {
		return Dependencies{}, repositoryError
	}

	branchManager, branchError := branching.NewManager(runtime.Logger, repositoryManager, runtime.Clock, branching.Settings{
		RepositoryPath:     configuration.ProjectPath,
		BaseBranch:         configuration.BaseBranch,
		RemoteName:         configuration.Remote,
		BranchPrefix:       configuration.BranchPrefix,
		BackupBranchPrefix: configuration.BackupBranchPrefix,
		ExcludedPaths:      configuration.StagingExclusions(),
	})
	if branchError != nil {
		return Dependencies{}, branchError
	}

	descriptorEditor, editorError := descriptor.NewEditor(runtime.Logger, runtime.FileSystem, configuration.BackupDescriptor)
	if editorError != nil {
		return Dependencies{}, editorError
	}

	mavenClient, mavenError := maven.NewClient(runtime.CommandExecutor, configuration.ProjectPath)
	if mavenError != nil {
		return Dependencies{}, mavenError
	}

	migrationInvoker, invokerError := migration.NewInvoker(runtime.Logger, runtime.FileSystem, mavenClient, migration.InvokerSettings{
		DescriptorPath:    configuration.DescriptorPath(),
		PluginCoordinates: configuration.RewritePlugin,
		Recipe:            configuration.Recipe,
	})
	if invokerError != nil {
		return Dependencies{}, invokerError
	}

	remediator, remediatorError := migration.NewRemediator(runtime.Logger, migrationInvoker, mavenClient, configuration.DependencyIncludes)
	if remediatorError != nil {
		return Dependencies{}, remediatorError
	}

	buildRunner, buildError := build.NewRunner(runtime.Logger, mavenClient)
	if buildError != nil {
		return Dependencies{}, buildError
	}

	githubClient, githubError := githubcli.NewClient(runtime.CommandExecutor)
	if githubError != nil {
		return Dependencies{}, githubError
	}

	reviewPublisher, publisherError := review.NewPublisher(review.Dependencies{
		Logger:             runtime.Logger,
		BranchPusher:       branchManager,
		PullRequestCreator: githubClient,
		ToolLocator:        runtime.ToolLocator,
		RemoteResolver:     repositoryManager,
	}, review.Settings{
		RepositoryPath: configuration.ProjectPath,
		RemoteName:     configuration.Remote,
		BaseBranch:     configuration.BaseBranch,
		Title:          configuration.PullRequest.Title,
		DescriptorFile: configuration.DescriptorFile,
		Recipe:         configuration.Recipe,
	})
	if publisherError != nil {
		return Dependencies{}, publisherError
	}

	return Dependencies{
		Logger:              runtime.Logger,
		Console:             runtime.Console,
		Prompter:            runtime.Prompter,
		PrerequisiteChecker: prerequisiteChecker,
		BranchManager:       branchManager,
		DescriptorEditor:    descriptorEditor,
		MigrationInvoker:    migrationInvoker,
		Remediator:          remediator,
		BuildRunner:         buildRunner,
		ReviewPublisher:     reviewPublisher,
	}, nil
}
