package execshell

import "context"

const (
	commandGitStringConstant    = "git"
	commandGitHubStringConstant = "gh"
	commandMavenStringConstant  = "mvn"
	commandJavaStringConstant   = "java"
)

// CommandName identifies an external executable.
type CommandName string

// Supported executables.
const (
	CommandGit    CommandName = CommandName(commandGitStringConstant)
	CommandGitHub CommandName = CommandName(commandGitHubStringConstant)
	CommandMaven  CommandName = CommandName(commandMavenStringConstant)
	CommandJava   CommandName = CommandName(commandJavaStringConstant)
)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands and reports their results.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}
