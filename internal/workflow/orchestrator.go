package workflow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/prompt"
	"github.com/temirov/jmigrate/internal/ui"
)

const (
	startBannerTitleConstant              = "Java 8 to 11 Migration Workflow"
	completionBannerTitleConstant         = "Migration Workflow Completed!"
	nextStepsHeadingConstant              = "Next steps:"
	branchLabelConstant                   = "Branch"
	pullRequestLabelConstant              = "Pull request"
	interruptedConsoleMessageConstant     = "Migration interrupted by user"
	unexpectedErrorReasonConstant         = "unexpected error"
	runStartedMessageConstant             = "Starting migration workflow"
	stepStartedMessageConstant            = "Workflow step started"
	stepFailedMessageConstant             = "Workflow step failed"
	runInterruptedMessageConstant         = "Migration workflow interrupted"
	runCompletedMessageConstant           = "Migration workflow completed"
	projectPathFieldNameConstant          = "project_path"
	baseBranchFieldNameConstant           = "base_branch"
	recipeFieldNameConstant               = "recipe"
	descriptorFieldNameConstant           = "descriptor"
	loggerDependencyNameConstant          = "logger"
	consoleDependencyNameConstant         = "console"
	prompterDependencyNameConstant        = "prompter"
	checkerDependencyNameConstant         = "prerequisite checker"
	branchDependencyNameConstant          = "branch manager"
	descriptorDependencyNameConstant      = "descriptor editor"
	invokerDependencyNameConstant         = "migration invoker"
	remediatorDependencyNameConstant      = "remediator"
	buildDependencyNameConstant           = "build runner"
	publisherDependencyNameConstant       = "review publisher"
	commandExecutorDependencyNameConstant = "command executor"
)

var nextSteps = []string{
	"Review the PR on GitHub",
	"Request code review from team members",
	"Run CI/CD pipeline",
	"Merge after approval",
}

// Dependencies configures the collaborators of Orchestrator.
type Dependencies struct {
	Logger              *zap.Logger
	Console             *ui.Console
	Prompter            prompt.ConfirmationPrompter
	PrerequisiteChecker PrerequisiteChecker
	BranchManager       BranchManager
	DescriptorEditor    DescriptorEditor
	MigrationInvoker    MigrationInvoker
	Remediator          Remediator
	BuildRunner         BuildRunner
	ReviewPublisher     ReviewPublisher
}

// Orchestrator runs the migration operations in order.
type Orchestrator struct {
	environment *Environment
	operations  []Operation
}

// NewOrchestrator constructs an Orchestrator running DefaultOperations.
func NewOrchestrator(configuration Configuration, dependencies Dependencies) (*Orchestrator, error) {
	return NewOrchestratorWithOperations(configuration, dependencies, DefaultOperations())
}

// NewOrchestratorWithOperations constructs an Orchestrator running the given operations.
func NewOrchestratorWithOperations(configuration Configuration, dependencies Dependencies, operations []Operation) (*Orchestrator, error) {
	sanitizedConfiguration := configuration.Sanitize()
	if validationError := sanitizedConfiguration.Validate(); validationError != nil {
		return nil, validationError
	}
	if dependencyError := validateDependencies(dependencies); dependencyError != nil {
		return nil, dependencyError
	}

	environment := &Environment{
		Configuration:       sanitizedConfiguration,
		Logger:              dependencies.Logger,
		Console:             dependencies.Console,
		Prompter:            dependencies.Prompter,
		PrerequisiteChecker: dependencies.PrerequisiteChecker,
		BranchManager:       dependencies.BranchManager,
		DescriptorEditor:    dependencies.DescriptorEditor,
		MigrationInvoker:    dependencies.MigrationInvoker,
		Remediator:          dependencies.Remediator,
		BuildRunner:         dependencies.BuildRunner,
		ReviewPublisher:     dependencies.ReviewPublisher,
	}
	return &Orchestrator{environment: environment, operations: append([]Operation{}, operations...)}, nil
}

// Run executes every operation in order. It returns FatalError for terminal step
// failures and an error wrapping ErrInterrupted once the context is cancelled. The
// summary reflects every step reached either way.
func (orchestrator *Orchestrator) Run(executionContext context.Context) (Summary, error) {
	environment := orchestrator.environment
	summary := Summary{}

	environment.Console.Banner(startBannerTitleConstant)
	environment.Logger.Info(
		runStartedMessageConstant,
		zap.String(projectPathFieldNameConstant, environment.Configuration.ProjectPath),
		zap.String(baseBranchFieldNameConstant, environment.Configuration.BaseBranch),
		zap.String(descriptorFieldNameConstant, environment.Configuration.DescriptorPath()),
		zap.String(recipeFieldNameConstant, environment.Configuration.Recipe),
	)

	for operationIndex := range orchestrator.operations {
		operation := orchestrator.operations[operationIndex]
		if operation == nil {
			continue
		}
		if contextError := executionContext.Err(); contextError != nil {
			return summary, orchestrator.interrupted(operation.Step(), contextError)
		}

		summary.visit(operation.Step())
		environment.Logger.Debug(stepStartedMessageConstant, zap.String(stepFieldNameConstant, string(operation.Step())))
		executionError := operation.Execute(executionContext, environment, &summary)

		if contextError := executionContext.Err(); contextError != nil {
			return summary, orchestrator.interrupted(lastVisitedStep(summary, operation.Step()), contextError)
		}
		if executionError != nil {
			var fatalError FatalError
			if !errors.As(executionError, &fatalError) {
				fatalError = FatalError{Step: operation.Step(), Reason: unexpectedErrorReasonConstant, Cause: executionError}
				executionError = fatalError
			}
			environment.Logger.Error(
				stepFailedMessageConstant,
				zap.String(stepFieldNameConstant, string(fatalError.Step)),
				zap.Error(executionError),
			)
			return summary, executionError
		}
	}

	summary.visit(StepDone)
	environment.Logger.Info(runCompletedMessageConstant, zap.String(branchFieldNameConstant, summary.MigrationBranch))
	orchestrator.printCompletion(summary)
	return summary, nil
}

func (orchestrator *Orchestrator) interrupted(step Step, cause error) error {
	orchestrator.environment.Logger.Warn(runInterruptedMessageConstant, zap.String(stepFieldNameConstant, string(step)))
	orchestrator.environment.Console.Failure(interruptedConsoleMessageConstant)
	return interruptedError(step, cause)
}

func (orchestrator *Orchestrator) printCompletion(summary Summary) {
	console := orchestrator.environment.Console
	console.Banner(completionBannerTitleConstant)
	if len(summary.MigrationBranch) > 0 {
		console.Detail(branchLabelConstant, summary.MigrationBranch)
	}
	if len(summary.Publish.PullRequestURL) > 0 {
		console.Detail(pullRequestLabelConstant, summary.Publish.PullRequestURL)
	}
	console.Heading(nextStepsHeadingConstant)
	console.NumberedList(nextSteps)
}

func lastVisitedStep(summary Summary, fallback Step) Step {
	if len(summary.VisitedSteps) == 0 {
		return fallback
	}
	return summary.VisitedSteps[len(summary.VisitedSteps)-1]
}

func validateDependencies(dependencies Dependencies) error {
	requiredDependencies := []struct {
		name       string
		configured bool
	}{
		{name: loggerDependencyNameConstant, configured: dependencies.Logger != nil},
		{name: consoleDependencyNameConstant, configured: dependencies.Console != nil},
		{name: prompterDependencyNameConstant, configured: dependencies.Prompter != nil},
		{name: checkerDependencyNameConstant, configured: dependencies.PrerequisiteChecker != nil},
		{name: branchDependencyNameConstant, configured: dependencies.BranchManager != nil},
		{name: descriptorDependencyNameConstant, configured: dependencies.DescriptorEditor != nil},
		{name: invokerDependencyNameConstant, configured: dependencies.MigrationInvoker != nil},
		{name: remediatorDependencyNameConstant, configured: dependencies.Remediator != nil},
		{name: buildDependencyNameConstant, configured: dependencies.BuildRunner != nil},
		{name: publisherDependencyNameConstant, configured: dependencies.ReviewPublisher != nil},
	}
	for _, requiredDependency := range requiredDependencies {
		if !requiredDependency.configured {
			return missingDependencyError(requiredDependency.name)
		}
	}
	return nil
}
