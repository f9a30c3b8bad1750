package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/branching"
	"github.com/temirov/jmigrate/internal/review"
)

const (
	javaFoundTemplateConstant              = "Java found: %s"
	prerequisitesMetMessageConstant        = "All prerequisites met!"
	backupCreatedTemplateConstant          = "Backup created: %s"
	backupFailedMessageConstant            = "Could not create backup branch"
	branchCreatedTemplateConstant          = "Migration branch created: %s"
	branchFailedMessageConstant            = "Could not create migration branch"
	branchFailedReasonTemplateConstant     = "could not create migration branch %s"
	descriptorUpdatedTemplateConstant      = "Java version updated to 11 in %s!"
	descriptorUnchangedTemplateConstant    = "No Java 8 version markers found in %s"
	descriptorFailedTemplateConstant       = "Could not update %s"
	descriptorFailedReasonTemplateConstant = "could not update Java version markers in %s"
	descriptorBackupLabelConstant          = "Backup"
	pluginMissingTemplateConstant          = "OpenRewrite plugin not found in %s"
	migrationAppliedMessageConstant        = "OpenRewrite migration applied!"
	migrationWarningsMessageConstant       = "OpenRewrite migration completed with warnings"
	buildSucceededMessageConstant          = "Build successful!"
	buildFailedMessageConstant             = "Build failed!"
	remediatingMessageConstant             = "Initial build failed. Applying fixes..."
	rebuildSucceededMessageConstant        = "Build successful after fixes!"
	rebuildFailedMessageConstant           = "Build still failing. Manual intervention required."
	rebuildFailedReasonConstant            = "build still failing after remediation; manual intervention required"
	testsPassedMessageConstant             = "All tests passed!"
	testsFailedMessageConstant             = "Some tests failed!"
	confirmationPromptConstant             = "Do you want to continue with PR creation? (y/n): "
	confirmationReadFailedReasonConstant   = "could not read operator confirmation"
	testFailuresAcceptedMessageConstant    = "Continuing with failing tests"
	changesCommittedMessageConstant        = "Changes committed!"
	nothingToCommitMessageConstant         = "No changes to commit"
	commitFailedTemplateConstant           = "Could not commit changes: %v"
	commitFailedMessageConstant            = "Could not commit changes"
	branchPushedTemplateConstant           = "Branch pushed to %s!"
	pushFailedMessageConstant              = "Could not push branch; push it manually"
	pullRequestCreatedMessageConstant      = "Pull request created!"
	pullRequestCreatedTemplateConstant     = "Pull request created: %s"
	pullRequestFailedMessageConstant       = "Could not create PR automatically"
	githubCLIMissingMessageConstant        = "GitHub CLI not installed. Please create PR manually."
	pullRequestDetailsHeadingConstant      = "PR Details:"
	pullRequestTitleLabelConstant          = "Title"
	pullRequestBaseLabelConstant           = "Base"
	pullRequestHeadLabelConstant           = "Head"
	pullRequestCompareLabelConstant        = "Compare"
	stepFieldNameConstant                  = "step"
	branchFieldNameConstant                = "branch"
	commitOutcomeFieldNameConstant         = "commit_outcome"
)

// DefaultOperations returns the migration steps in execution order.
func DefaultOperations() []Operation {
	return []Operation{
		prerequisiteOperation{},
		backupOperation{},
		branchCreationOperation{},
		descriptorUpdateOperation{},
		migrationOperation{},
		buildOperation{},
		testOperation{},
		commitOperation{},
		publishOperation{},
	}
}

type prerequisiteOperation struct{}

func (prerequisiteOperation) Step() Step {
	return StepPrerequisiteCheck
}

func (prerequisiteOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	report, checkError := environment.PrerequisiteChecker.Check(executionContext)
	if checkError != nil {
		return checkError
	}
	summary.JavaVersion = report.JavaVersion
	if !report.Satisfied() {
		environment.Console.Failure(report.FailureReason())
		return FatalError{Step: StepPrerequisiteCheck, Reason: report.FailureReason()}
	}
	if len(report.JavaVersion) > 0 {
		environment.Console.Success(fmt.Sprintf(javaFoundTemplateConstant, report.JavaVersion))
	}
	environment.Console.Success(prerequisitesMetMessageConstant)
	return nil
}

type backupOperation struct{}

func (backupOperation) Step() Step {
	return StepBackup
}

func (backupOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	backupBranch, backupError := environment.BranchManager.Backup(executionContext)
	if backupError != nil {
		environment.Logger.Warn(backupFailedMessageConstant, zap.String(branchFieldNameConstant, backupBranch), zap.Error(backupError))
		environment.Console.Warning(backupFailedMessageConstant)
		return nil
	}
	summary.BackupBranch = backupBranch
	environment.Console.Success(fmt.Sprintf(backupCreatedTemplateConstant, backupBranch))
	return nil
}

type branchCreationOperation struct{}

func (branchCreationOperation) Step() Step {
	return StepBranchCreate
}

func (branchCreationOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	migrationBranch, creationError := environment.BranchManager.CreateMigrationBranch(executionContext)
	if creationError != nil {
		environment.Console.Failure(branchFailedMessageConstant)
		return FatalError{
			Step:   StepBranchCreate,
			Reason: fmt.Sprintf(branchFailedReasonTemplateConstant, migrationBranch),
			Cause:  creationError,
		}
	}
	summary.MigrationBranch = migrationBranch
	environment.Console.Success(fmt.Sprintf(branchCreatedTemplateConstant, migrationBranch))
	return nil
}

type descriptorUpdateOperation struct{}

func (descriptorUpdateOperation) Step() Step {
	return StepDescriptorUpdate
}

func (descriptorUpdateOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	descriptorFile := environment.Configuration.DescriptorFile
	updateResult, updateError := environment.DescriptorEditor.UpdateVersionMarkers(environment.Configuration.DescriptorPath())
	if updateError != nil {
		environment.Console.Failure(fmt.Sprintf(descriptorFailedTemplateConstant, descriptorFile))
		return FatalError{
			Step:   StepDescriptorUpdate,
			Reason: fmt.Sprintf(descriptorFailedReasonTemplateConstant, descriptorFile),
			Cause:  updateError,
		}
	}
	summary.DescriptorUpdate = updateResult
	if !updateResult.Changed() {
		environment.Console.Warning(fmt.Sprintf(descriptorUnchangedTemplateConstant, descriptorFile))
		return nil
	}
	environment.Console.Success(fmt.Sprintf(descriptorUpdatedTemplateConstant, descriptorFile))
	if len(updateResult.BackupPath) > 0 {
		environment.Console.Detail(descriptorBackupLabelConstant, updateResult.BackupPath)
	}
	return nil
}

type migrationOperation struct{}

func (migrationOperation) Step() Step {
	return StepMigrationRun
}

func (migrationOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	invocationResult := environment.MigrationInvoker.Run(executionContext)
	summary.Migration = invocationResult
	if !invocationResult.PluginDeclared {
		environment.Console.Warning(fmt.Sprintf(pluginMissingTemplateConstant, environment.Configuration.DescriptorFile))
	}
	if invocationResult.Succeeded {
		environment.Console.Success(migrationAppliedMessageConstant)
	} else {
		environment.Console.Warning(migrationWarningsMessageConstant)
	}
	return nil
}

// buildOperation covers the first build, the remediation and the single retry.
type buildOperation struct{}

func (buildOperation) Step() Step {
	return StepBuildAttempt1
}

func (buildOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	if environment.BuildRunner.Build(executionContext) {
		summary.BuildPassed = true
		environment.Console.Success(buildSucceededMessageConstant)
		return nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}
	environment.Console.Failure(buildFailedMessageConstant)

	summary.visit(StepRemediate)
	environment.Console.Warning(remediatingMessageConstant)
	environment.Remediator.AttemptFix(executionContext)
	summary.RemediationApplied = true
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	summary.visit(StepBuildAttempt2)
	if environment.BuildRunner.Build(executionContext) {
		summary.BuildPassed = true
		environment.Console.Success(rebuildSucceededMessageConstant)
		return nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}
	environment.Console.Failure(rebuildFailedMessageConstant)
	return FatalError{Step: StepBuildAttempt2, Reason: rebuildFailedReasonConstant}
}

// testOperation runs the tests and asks the operator whether to continue when they fail.
type testOperation struct{}

func (testOperation) Step() Step {
	return StepTestRun
}

func (testOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	if environment.BuildRunner.Test(executionContext) {
		summary.TestsPassed = true
		environment.Console.Success(testsPassedMessageConstant)
		return nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}
	environment.Console.Failure(testsFailedMessageConstant)

	summary.visit(StepTestConfirmation)
	confirmed, promptError := environment.Prompter.Confirm(executionContext, confirmationPromptConstant)
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}
	if promptError != nil {
		return FatalError{Step: StepTestConfirmation, Reason: confirmationReadFailedReasonConstant, Cause: promptError}
	}
	if !confirmed {
		return FatalError{Step: StepTestConfirmation, Reason: operatorDeclinedMessageConstant, Cause: ErrOperatorDeclined}
	}
	summary.TestFailuresAccepted = true
	environment.Logger.Warn(testFailuresAcceptedMessageConstant, zap.String(stepFieldNameConstant, string(StepTestConfirmation)))
	return nil
}

type commitOperation struct{}

func (commitOperation) Step() Step {
	return StepCommit
}

func (commitOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	commitOutcome, commitError := environment.BranchManager.Commit(executionContext)
	summary.CommitOutcome = commitOutcome
	summary.CommitError = commitError

	switch commitOutcome {
	case branching.CommitOutcomeCommitted:
		environment.Console.Success(changesCommittedMessageConstant)
	case branching.CommitOutcomeNothingToCommit:
		environment.Console.Warning(nothingToCommitMessageConstant)
	default:
		environment.Logger.Warn(
			commitFailedMessageConstant,
			zap.String(commitOutcomeFieldNameConstant, commitOutcome.String()),
			zap.Error(commitError),
		)
		environment.Console.Warning(fmt.Sprintf(commitFailedTemplateConstant, commitError))
	}
	return nil
}

type publishOperation struct{}

func (publishOperation) Step() Step {
	return StepPublish
}

func (publishOperation) Execute(executionContext context.Context, environment *Environment, summary *Summary) error {
	publishResult := environment.ReviewPublisher.Publish(executionContext, summary.MigrationBranch, review.RunOutcome{
		RemediationApplied: summary.RemediationApplied,
		TestsPassed:        summary.TestsPassed,
	})
	summary.Publish = publishResult

	if publishResult.Pushed {
		environment.Console.Success(fmt.Sprintf(branchPushedTemplateConstant, environment.Configuration.Remote))
	} else {
		environment.Console.Warning(pushFailedMessageConstant)
	}

	switch {
	case publishResult.PullRequestCreated && len(publishResult.PullRequestURL) > 0:
		environment.Console.Success(fmt.Sprintf(pullRequestCreatedTemplateConstant, publishResult.PullRequestURL))
	case publishResult.PullRequestCreated:
		environment.Console.Success(pullRequestCreatedMessageConstant)
	case !publishResult.GitHubCLIAvailable:
		environment.Console.Warning(githubCLIMissingMessageConstant)
	default:
		environment.Console.Warning(pullRequestFailedMessageConstant)
	}

	if publishResult.Manual != nil {
		environment.Console.Heading(pullRequestDetailsHeadingConstant)
		environment.Console.Detail(pullRequestTitleLabelConstant, publishResult.Manual.Title)
		environment.Console.Detail(pullRequestBaseLabelConstant, publishResult.Manual.BaseBranch)
		environment.Console.Detail(pullRequestHeadLabelConstant, publishResult.Manual.HeadBranch)
		if len(publishResult.Manual.CompareURL) > 0 {
			environment.Console.Detail(pullRequestCompareLabelConstant, publishResult.Manual.CompareURL)
		}
	}
	return nil
}
