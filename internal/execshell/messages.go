package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	firstCommitMessageLineSeparatorConstant = "\n"
)

const (
	gitStatusSubcommandNameConstant        = "status"
	gitCheckoutSubcommandNameConstant      = "checkout"
	gitCreateBranchFlagConstant            = "-b"
	gitBranchSubcommandNameConstant        = "branch"
	gitPullSubcommandNameConstant          = "pull"
	gitPushSubcommandNameConstant          = "push"
	gitAddSubcommandNameConstant           = "add"
	gitCommitSubcommandNameConstant        = "commit"
	gitMessageFlagConstant                 = "-m"
	gitRemoteSubcommandNameConstant        = "remote"
	gitAddCurrentDirectoryPathspecConstant = "."
	gitAddAllChangesLabelConstant          = "all changes"
)

const (
	gitStatusStartTemplateConstant                  = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant                = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant                = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant       = "Unable to review working tree status in %s: %s"
	gitCheckoutStartTemplateConstant                = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant              = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant              = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant     = "Unable to switch %s to branch %s: %s"
	gitCheckoutNewStartTemplateConstant             = "Creating and switching %s to branch %s"
	gitCheckoutNewSuccessTemplateConstant           = "%s now on new branch %s"
	gitCheckoutNewFailureTemplateConstant           = "Failed to create branch %s in %s (exit code %d%s)"
	gitCheckoutNewExecutionFailureTemplateConstant  = "Unable to create branch %s in %s: %s"
	gitBranchCreationStartTemplateConstant          = "Creating branch %s in %s"
	gitBranchCreationSuccessTemplateConstant        = "Created branch %s in %s"
	gitBranchCreationFailureTemplateConstant        = "Failed to create branch %s in %s (exit code %d%s)"
	gitBranchCreationExecutionFailureTemplate       = "Unable to create branch %s in %s: %s"
	gitPullStartTemplateConstant                    = "Pulling %s from %s in %s"
	gitPullSuccessTemplateConstant                  = "Pulled %s from %s in %s"
	gitPullFailureTemplateConstant                  = "Failed to pull %s from %s in %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant         = "Unable to pull %s from %s in %s: %s"
	gitPushStartTemplateConstant                    = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                  = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                  = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant         = "Unable to push %s to %s from %s: %s"
	gitAddStartTemplateConstant                     = "Staging %s in %s"
	gitAddSuccessTemplateConstant                   = "Staged %s in %s"
	gitAddFailureTemplateConstant                   = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant          = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant                  = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant       = "Unable to create commit in %s with message %q: %s"
	gitRemoteLookupStartTemplateConstant            = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant          = "Read %s remote for %s"
	gitRemoteLookupFailureTemplateConstant          = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant = "Unable to read %s remote for %s: %s"
)

const (
	mavenRewritePluginMarkerConstant                = "rewrite-maven-plugin"
	mavenVersionsGoalMarkerConstant                 = "versions:"
	mavenTestPhaseConstant                          = "test"
	mavenInstallPhaseConstant                       = "install"
	mavenRewriteStartTemplateConstant               = "Applying OpenRewrite recipes in %s"
	mavenRewriteSuccessTemplateConstant             = "Applied OpenRewrite recipes in %s"
	mavenRewriteFailureTemplateConstant             = "OpenRewrite recipes reported problems in %s (exit code %d%s)"
	mavenRewriteExecutionFailureTemplateConstant    = "Unable to apply OpenRewrite recipes in %s: %s"
	mavenVersionsStartTemplateConstant              = "Updating dependency versions in %s"
	mavenVersionsSuccessTemplateConstant            = "Updated dependency versions in %s"
	mavenVersionsFailureTemplateConstant            = "Failed to update dependency versions in %s (exit code %d%s)"
	mavenVersionsExecutionFailureTemplateConstant   = "Unable to update dependency versions in %s: %s"
	mavenBuildStartTemplateConstant                 = "Building %s with Maven"
	mavenBuildSuccessTemplateConstant               = "Built %s with Maven"
	mavenBuildFailureTemplateConstant               = "Maven build failed for %s (exit code %d%s)"
	mavenBuildExecutionFailureTemplateConstant      = "Unable to build %s with Maven: %s"
	mavenTestStartTemplateConstant                  = "Running tests in %s"
	mavenTestSuccessTemplateConstant                = "Tests passed in %s"
	mavenTestFailureTemplateConstant                = "Tests failed in %s (exit code %d%s)"
	mavenTestExecutionFailureTemplateConstant       = "Unable to run tests in %s: %s"
	githubPullRequestSubcommandNameConstant         = "pr"
	githubCreateSubcommandNameConstant              = "create"
	githubHeadFlagConstant                          = "--head"
	githubBaseFlagConstant                          = "--base"
	githubPullRequestCreateStartTemplateConstant    = "Opening pull request from %s into %s"
	githubPullRequestCreateSuccessTemplateConstant  = "Opened pull request from %s into %s"
	githubPullRequestCreateFailureTemplateConstant  = "Failed to open pull request from %s into %s (exit code %d%s)"
	githubPullRequestCreateExecutionFailureTemplate = "Unable to open pull request from %s into %s: %s"
	javaVersionFlagConstant                         = "-version"
	javaVersionStartTemplateConstant                = "Checking installed Java version"
	javaVersionSuccessTemplateConstant              = "Checked installed Java version"
	javaVersionFailureTemplateConstant              = "Failed to check installed Java version (exit code %d%s)"
	javaVersionExecutionFailureTemplateConstant     = "Unable to check installed Java version: %s"
)

// messageTemplates groups the four lifecycle templates of one command family.
type messageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandMaven:
		return formatter.describeMavenMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	case CommandJava:
		return formatter.describeJavaMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch strings.TrimSpace(arguments[0]) {
	case gitStatusSubcommandNameConstant:
		return formatter.render(messageTemplates{
			start:            gitStatusStartTemplateConstant,
			success:          gitStatusSuccessTemplateConstant,
			failure:          gitStatusFailureTemplateConstant,
			executionFailure: gitStatusExecutionFailureTemplateConstant,
		}, []any{workingDirectory}, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		if containsArgument(arguments, gitCreateBranchFlagConstant) {
			branchName := formatter.ensureValue(findFlagValue(arguments, gitCreateBranchFlagConstant))
			if stage == messageStageFailure || stage == messageStageExecutionFailure {
				return formatter.render(messageTemplates{
					failure:          gitCheckoutNewFailureTemplateConstant,
					executionFailure: gitCheckoutNewExecutionFailureTemplateConstant,
				}, []any{branchName, workingDirectory}, result, failure, stage)
			}
			return formatter.render(messageTemplates{
				start:   gitCheckoutNewStartTemplateConstant,
				success: gitCheckoutNewSuccessTemplateConstant,
			}, []any{workingDirectory, branchName}, result, failure, stage)
		}
		branchName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		return formatter.render(messageTemplates{
			start:            gitCheckoutStartTemplateConstant,
			success:          gitCheckoutSuccessTemplateConstant,
			failure:          gitCheckoutFailureTemplateConstant,
			executionFailure: gitCheckoutExecutionFailureTemplateConstant,
		}, []any{workingDirectory, branchName}, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		branchName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
		return formatter.render(messageTemplates{
			start:            gitBranchCreationStartTemplateConstant,
			success:          gitBranchCreationSuccessTemplateConstant,
			failure:          gitBranchCreationFailureTemplateConstant,
			executionFailure: gitBranchCreationExecutionFailureTemplate,
		}, []any{branchName, workingDirectory}, result, failure, stage)
	case gitPullSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		branchName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
		return formatter.render(messageTemplates{
			start:            gitPullStartTemplateConstant,
			success:          gitPullSuccessTemplateConstant,
			failure:          gitPullFailureTemplateConstant,
			executionFailure: gitPullExecutionFailureTemplateConstant,
		}, []any{branchName, remoteName, workingDirectory}, result, failure, stage)
	case gitPushSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		branchName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
		return formatter.render(messageTemplates{
			start:            gitPushStartTemplateConstant,
			success:          gitPushSuccessTemplateConstant,
			failure:          gitPushFailureTemplateConstant,
			executionFailure: gitPushExecutionFailureTemplateConstant,
		}, []any{branchName, remoteName, workingDirectory}, result, failure, stage)
	case gitAddSubcommandNameConstant:
		targetPath := formatter.extractFirstNonFlagArgument(arguments[1:])
		if len(targetPath) == 0 || targetPath == gitAddCurrentDirectoryPathspecConstant {
			targetPath = gitAddAllChangesLabelConstant
		}
		return formatter.render(messageTemplates{
			start:            gitAddStartTemplateConstant,
			success:          gitAddSuccessTemplateConstant,
			failure:          gitAddFailureTemplateConstant,
			executionFailure: gitAddExecutionFailureTemplateConstant,
		}, []any{targetPath, workingDirectory}, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		commitMessage := formatter.extractCommitSubject(arguments)
		return formatter.render(messageTemplates{
			start:            gitCommitStartTemplateConstant,
			success:          gitCommitSuccessTemplateConstant,
			failure:          gitCommitFailureTemplateConstant,
			executionFailure: gitCommitExecutionFailureTemplateConstant,
		}, []any{workingDirectory, commitMessage}, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, len(arguments)-1))
		return formatter.render(messageTemplates{
			start:            gitRemoteLookupStartTemplateConstant,
			success:          gitRemoteLookupSuccessTemplateConstant,
			failure:          gitRemoteLookupFailureTemplateConstant,
			executionFailure: gitRemoteLookupExecutionFailureTemplateConstant,
		}, []any{remoteName, workingDirectory}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeMavenMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch {
	case containsArgumentFragment(arguments, mavenRewritePluginMarkerConstant):
		return formatter.render(messageTemplates{
			start:            mavenRewriteStartTemplateConstant,
			success:          mavenRewriteSuccessTemplateConstant,
			failure:          mavenRewriteFailureTemplateConstant,
			executionFailure: mavenRewriteExecutionFailureTemplateConstant,
		}, []any{workingDirectory}, result, failure, stage)
	case containsArgumentFragment(arguments, mavenVersionsGoalMarkerConstant):
		return formatter.render(messageTemplates{
			start:            mavenVersionsStartTemplateConstant,
			success:          mavenVersionsSuccessTemplateConstant,
			failure:          mavenVersionsFailureTemplateConstant,
			executionFailure: mavenVersionsExecutionFailureTemplateConstant,
		}, []any{workingDirectory}, result, failure, stage)
	case containsArgument(arguments, mavenInstallPhaseConstant):
		return formatter.render(messageTemplates{
			start:            mavenBuildStartTemplateConstant,
			success:          mavenBuildSuccessTemplateConstant,
			failure:          mavenBuildFailureTemplateConstant,
			executionFailure: mavenBuildExecutionFailureTemplateConstant,
		}, []any{workingDirectory}, result, failure, stage)
	case containsArgument(arguments, mavenTestPhaseConstant):
		return formatter.render(messageTemplates{
			start:            mavenTestStartTemplateConstant,
			success:          mavenTestSuccessTemplateConstant,
			failure:          mavenTestFailureTemplateConstant,
			executionFailure: mavenTestExecutionFailureTemplateConstant,
		}, []any{workingDirectory}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || arguments[0] != githubPullRequestSubcommandNameConstant || arguments[1] != githubCreateSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	headBranch := formatter.ensureValue(findFlagValue(arguments, githubHeadFlagConstant))
	baseBranch := formatter.ensureValue(findFlagValue(arguments, githubBaseFlagConstant))
	return formatter.render(messageTemplates{
		start:            githubPullRequestCreateStartTemplateConstant,
		success:          githubPullRequestCreateSuccessTemplateConstant,
		failure:          githubPullRequestCreateFailureTemplateConstant,
		executionFailure: githubPullRequestCreateExecutionFailureTemplate,
	}, []any{headBranch, baseBranch}, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeJavaMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, javaVersionFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	return formatter.render(messageTemplates{
		start:            javaVersionStartTemplateConstant,
		success:          javaVersionSuccessTemplateConstant,
		failure:          javaVersionFailureTemplateConstant,
		executionFailure: javaVersionExecutionFailureTemplateConstant,
	}, nil, result, failure, stage)
}

// render applies the template for the stage; failure templates receive the exit
// code and standard error suffix, execution failure templates the failure text.
func (formatter CommandMessageFormatter) render(templates messageTemplates, values []any, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, values...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, values...)
	case messageStageFailure:
		failureValues := append(append([]any{}, values...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, failureValues...)
	case messageStageExecutionFailure:
		failureValues := append(append([]any{}, values...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, failureValues...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

// extractCommitSubject returns the first line of the -m value.
func (formatter CommandMessageFormatter) extractCommitSubject(arguments []string) string {
	commitMessage := findFlagValue(arguments, gitMessageFlagConstant)
	if len(commitMessage) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	subject, _, _ := strings.Cut(commitMessage, firstCommitMessageLineSeparatorConstant)
	return strings.TrimSpace(subject)
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func containsArgumentFragment(arguments []string, fragment string) bool {
	for _, argument := range arguments {
		if strings.Contains(argument, fragment) {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
