package migration

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/workflow"
)

const (
	runCommandUseConstant                       = "run"
	runCommandShortDescriptionConstant          = "Migrate a Maven project from Java 8 to Java 11"
	runCommandLongDescriptionConstant           = "run checks prerequisites, branches the repository, rewrites the project descriptor, applies the OpenRewrite recipe, builds and tests the project, then commits, pushes and opens a pull request."
	baseBranchFlagNameConstant                  = "base-branch"
	baseBranchFlagDescriptionConstant           = "Branch the migration branch is created from and targeted at"
	assumeYesFlagNameConstant                   = "yes"
	assumeYesFlagShorthandConstant              = "y"
	assumeYesFlagDescriptionConstant            = "Continue to pull request creation when tests fail without prompting"
	noDescriptorBackupFlagNameConstant          = "no-descriptor-backup"
	noDescriptorBackupFlagDescriptionConstant   = "Skip writing a backup copy of the project descriptor before editing it"
	runtimeConstructionErrorTemplateConstant    = "unable to prepare migration runtime: %w"
	dependencyConstructionErrorTemplateConstant = "unable to construct migration workflow: %w"
	panicRecoveredErrorTemplateConstant         = "unexpected error: %v"
	runFinishedMessageConstant                  = "migration command finished"
	visitedStepsFieldConstant                   = "visited_steps"
	testFailuresAcceptedFieldConstant           = "test_failures_accepted"
)

// RunCommandBuilder assembles the run command.
type RunCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	Collaborators                Collaborators
}

// Build constructs the run command.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   runCommandUseConstant,
		Short: runCommandShortDescriptionConstant,
		Long:  runCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(projectFlagNameConstant, "", projectFlagDescriptionConstant)
	command.Flags().String(baseBranchFlagNameConstant, "", baseBranchFlagDescriptionConstant)
	command.Flags().BoolP(assumeYesFlagNameConstant, assumeYesFlagShorthandConstant, false, assumeYesFlagDescriptionConstant)
	command.Flags().Bool(noDescriptorBackupFlagNameConstant, false, noDescriptorBackupFlagDescriptionConstant)

	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, arguments []string) (runError error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			runError = fmt.Errorf(panicRecoveredErrorTemplateConstant, recovered)
		}
	}()

	configuration, configurationError := builder.commandConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	logger := resolveLogger(builder.LoggerProvider)
	runtime, runtimeError := builder.Collaborators.runtime(
		command,
		logger,
		resolveHumanReadableLogging(builder.HumanReadableLoggingProvider),
		configuration.AssumeYes,
	)
	if runtimeError != nil {
		return fmt.Errorf(runtimeConstructionErrorTemplateConstant, runtimeError)
	}

	workflowDependencies, dependenciesError := workflow.BuildDependencies(configuration, runtime)
	if dependenciesError != nil {
		return fmt.Errorf(dependencyConstructionErrorTemplateConstant, dependenciesError)
	}

	orchestrator, orchestratorError := workflow.NewOrchestrator(configuration, workflowDependencies)
	if orchestratorError != nil {
		return orchestratorError
	}

	summary, workflowError := orchestrator.Run(command.Context())
	visitedSteps := make([]string, 0, len(summary.VisitedSteps))
	for _, step := range summary.VisitedSteps {
		visitedSteps = append(visitedSteps, string(step))
	}
	logger.Debug(
		runFinishedMessageConstant,
		zap.Strings(visitedStepsFieldConstant, visitedSteps),
		zap.Bool(testFailuresAcceptedFieldConstant, summary.TestFailuresAccepted),
	)
	return workflowError
}

// commandConfiguration layers the run flags over the provided configuration.
func (builder *RunCommandBuilder) commandConfiguration(command *cobra.Command) (workflow.Configuration, error) {
	configuration := resolveConfiguration(builder.ConfigurationProvider)

	projectPath, projectPathError := resolveProjectPath(command, configuration.ProjectPath, builder.Collaborators.fileSystem())
	if projectPathError != nil {
		return workflow.Configuration{}, projectPathError
	}
	configuration.ProjectPath = projectPath

	if command.Flags().Changed(baseBranchFlagNameConstant) {
		configuration.BaseBranch, _ = command.Flags().GetString(baseBranchFlagNameConstant)
	}
	if command.Flags().Changed(assumeYesFlagNameConstant) {
		configuration.AssumeYes, _ = command.Flags().GetBool(assumeYesFlagNameConstant)
	}
	if command.Flags().Changed(noDescriptorBackupFlagNameConstant) {
		skipBackup, _ := command.Flags().GetBool(noDescriptorBackupFlagNameConstant)
		configuration.BackupDescriptor = !skipBackup
	}

	return configuration.Sanitize(), nil
}
