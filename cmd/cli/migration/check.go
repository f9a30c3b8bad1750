package migration

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/jmigrate/internal/githubauth"
	"github.com/temirov/jmigrate/internal/ui"
	"github.com/temirov/jmigrate/internal/utils"
	"github.com/temirov/jmigrate/internal/workflow"
)

const (
	checkCommandUseConstant              = "check"
	checkCommandShortDescriptionConstant = "Verify the tools and project directory a migration needs"
	checkCommandLongDescriptionConstant  = "check confirms git, mvn and java are installed, reports the detected Java version and verifies the project directory exists. GitHub CLI is reported but optional."
	checkPassedMessageConstant           = "All prerequisites met!"
	checkJavaVersionLabelConstant        = "Java version"
	checkProjectLabelConstant            = "Project"
	checkGitHubCLILabelConstant          = "GitHub CLI"
	gitHubCLIAvailableValueConstant      = "available"
	gitHubCLIMissingValueConstant        = "not installed; pull requests must be created manually"
	unknownJavaVersionConstant           = "unknown"
	checkerConstructionTemplateConstant  = "unable to construct prerequisite checker: %w"
	checkFailedTemplateConstant          = "prerequisite check failed: %s"
	gitHubCLIExecutableConstant          = "gh"
	checkGitHubTokenLabelConstant        = "GitHub token"
	gitHubTokenMissingValueConstant      = "not set; gh uses its stored login"
)

// CheckCommandBuilder assembles the check command.
type CheckCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	Collaborators                Collaborators
}

// Build constructs the check command.
func (builder *CheckCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkCommandUseConstant,
		Short: checkCommandShortDescriptionConstant,
		Long:  checkCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(projectFlagNameConstant, "", projectFlagDescriptionConstant)

	return command, nil
}

func (builder *CheckCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	projectPath, projectPathError := resolveProjectPath(command, configuration.ProjectPath, builder.Collaborators.fileSystem())
	if projectPathError != nil {
		return projectPathError
	}
	configuration.ProjectPath = projectPath

	logger := resolveLogger(builder.LoggerProvider)
	runtime, runtimeError := builder.Collaborators.runtime(command, logger, resolveHumanReadableLogging(builder.HumanReadableLoggingProvider), true)
	if runtimeError != nil {
		return fmt.Errorf(runtimeConstructionErrorTemplateConstant, runtimeError)
	}

	checker, checkerError := workflow.NewPrerequisiteChecker(configuration, runtime)
	if checkerError != nil {
		return fmt.Errorf(checkerConstructionTemplateConstant, checkerError)
	}

	report, checkError := checker.Check(command.Context())
	if checkError != nil {
		return checkError
	}

	console := ui.NewConsole(utils.NewFlushingWriter(command.OutOrStdout()))
	if !report.Satisfied() {
		console.Failure(report.FailureReason())
		return fmt.Errorf(checkFailedTemplateConstant, report.FailureReason())
	}

	javaVersion := report.JavaVersion
	if len(javaVersion) == 0 {
		javaVersion = unknownJavaVersionConstant
	}
	gitHubCLIStatus := gitHubCLIMissingValueConstant
	if _, lookupError := runtime.ToolLocator.LookPath(gitHubCLIExecutableConstant); lookupError == nil {
		gitHubCLIStatus = gitHubCLIAvailableValueConstant
	}

	console.Success(checkPassedMessageConstant)
	console.Detail(checkProjectLabelConstant, report.ProjectPath)
	console.Detail(checkJavaVersionLabelConstant, javaVersion)
	console.Detail(checkGitHubCLILabelConstant, gitHubCLIStatus)
	gitHubTokenStatus := gitHubTokenMissingValueConstant
	if token, tokenAvailable := githubauth.ResolveToken(nil); tokenAvailable {
		gitHubTokenStatus = token.Source
	}
	console.Detail(checkGitHubTokenLabelConstant, gitHubTokenStatus)
	return nil
}
