package workflow

// Step identifies a state of the migration workflow.
type Step string

// Workflow steps in execution order.
const (
	StepPrerequisiteCheck Step = Step("prerequisite-check")
	StepBackup            Step = Step("backup")
	StepBranchCreate      Step = Step("branch-create")
	StepDescriptorUpdate  Step = Step("descriptor-update")
	StepMigrationRun      Step = Step("migration-run")
	StepBuildAttempt1     Step = Step("build-attempt-1")
	StepRemediate         Step = Step("remediate")
	StepBuildAttempt2     Step = Step("build-attempt-2")
	StepTestRun           Step = Step("test-run")
	StepTestConfirmation  Step = Step("test-confirmation")
	StepCommit            Step = Step("commit")
	StepPublish           Step = Step("publish")
	StepDone              Step = Step("done")
)
