package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/branching"
	"github.com/temirov/jmigrate/internal/descriptor"
	"github.com/temirov/jmigrate/internal/migration"
	"github.com/temirov/jmigrate/internal/prerequisites"
	"github.com/temirov/jmigrate/internal/prompt"
	"github.com/temirov/jmigrate/internal/review"
	"github.com/temirov/jmigrate/internal/ui"
)

// Operation performs one workflow step and records its outcome in the summary.
type Operation interface {
	Step() Step
	Execute(executionContext context.Context, environment *Environment, summary *Summary) error
}

// PrerequisiteChecker verifies tools and the project directory.
type PrerequisiteChecker interface {
	Check(executionContext context.Context) (prerequisites.Report, error)
}

// BranchManager creates the backup and migration branches and commits.
type BranchManager interface {
	Backup(executionContext context.Context) (string, error)
	CreateMigrationBranch(executionContext context.Context) (string, error)
	Commit(executionContext context.Context) (branching.CommitOutcome, error)
}

// DescriptorEditor rewrites the Java version markers of the build descriptor.
type DescriptorEditor interface {
	UpdateVersionMarkers(descriptorPath string) (descriptor.UpdateResult, error)
}

// MigrationInvoker runs the OpenRewrite recipe.
type MigrationInvoker interface {
	Run(executionContext context.Context) migration.InvocationResult
}

// Remediator attempts to repair a failed build.
type Remediator interface {
	AttemptFix(executionContext context.Context)
}

// BuildRunner runs the build and test phases.
type BuildRunner interface {
	Build(executionContext context.Context) bool
	Test(executionContext context.Context) bool
}

// ReviewPublisher pushes the branch and opens the pull request.
type ReviewPublisher interface {
	Publish(executionContext context.Context, branchName string, outcome review.RunOutcome) review.PublishResult
}

// Environment exposes the collaborators shared by operations.
type Environment struct {
	Configuration       Configuration
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

// Summary records what a run did.
type Summary struct {
	VisitedSteps         []Step
	JavaVersion          string
	BackupBranch         string
	MigrationBranch      string
	DescriptorUpdate     descriptor.UpdateResult
	Migration            migration.InvocationResult
	RemediationApplied   bool
	BuildPassed          bool
	TestsPassed          bool
	TestFailuresAccepted bool
	CommitOutcome        branching.CommitOutcome
	CommitError          error
	Publish              review.PublishResult
}

// Visited reports whether the run reached step.
func (summary Summary) Visited(step Step) bool {
	for _, visitedStep := range summary.VisitedSteps {
		if visitedStep == step {
			return true
		}
	}
	return false
}

func (summary *Summary) visit(step Step) {
	summary.VisitedSteps = append(summary.VisitedSteps, step)
}
