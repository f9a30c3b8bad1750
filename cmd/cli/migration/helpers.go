package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/branching"
	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/filesystem"
	"github.com/temirov/jmigrate/internal/prompt"
	"github.com/temirov/jmigrate/internal/ui"
	"github.com/temirov/jmigrate/internal/utils"
	"github.com/temirov/jmigrate/internal/workflow"
)

const (
	projectFlagNameConstant               = "project"
	projectFlagDescriptionConstant        = "Path to the Maven project to migrate (defaults to the working directory)"
	nonInteractiveInputMessageConstant    = "standard input is not a terminal; the test failure confirmation reads piped input"
	projectPathResolutionTemplateConstant = "unable to resolve project path: %w"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the migration configuration resolved by the application.
type ConfigurationProvider func() workflow.Configuration

// PrompterFactory constructs confirmation prompters scoped to a command.
type PrompterFactory func(command *cobra.Command, assumeYes bool) prompt.ConfirmationPrompter

// Collaborators groups the process-level dependencies shared by the migration commands.
// Nil fields fall back to the operating system implementations.
type Collaborators struct {
	CommandRunner   execshell.CommandRunner
	ToolLocator     execshell.ToolLocator
	FileSystem      filesystem.FileSystem
	Clock           branching.Clock
	PrompterFactory PrompterFactory
}

func (collaborators Collaborators) fileSystem() filesystem.FileSystem {
	if collaborators.FileSystem == nil {
		return filesystem.OSFileSystem{}
	}
	return collaborators.FileSystem
}

func (collaborators Collaborators) runtime(command *cobra.Command, logger *zap.Logger, humanReadableLogging bool, assumeYes bool) (workflow.Runtime, error) {
	commandRunner := collaborators.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if executorError != nil {
		return workflow.Runtime{}, executorError
	}

	var toolLocator execshell.ToolLocator = execshell.NewOSToolLocator()
	if collaborators.ToolLocator != nil {
		toolLocator = collaborators.ToolLocator
	}

	var clock branching.Clock = branching.SystemClock{}
	if collaborators.Clock != nil {
		clock = collaborators.Clock
	}

	return workflow.Runtime{
		Logger:          logger,
		Console:         ui.NewConsole(utils.NewFlushingWriter(command.OutOrStdout())),
		Prompter:        resolvePrompter(collaborators.PrompterFactory, command, logger, assumeYes),
		CommandExecutor: shellExecutor,
		ToolLocator:     toolLocator,
		FileSystem:      collaborators.fileSystem(),
		Clock:           clock,
	}, nil
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveHumanReadableLogging(provider func() bool) bool {
	if provider == nil {
		return false
	}
	return provider()
}

func resolvePrompter(factory PrompterFactory, command *cobra.Command, logger *zap.Logger, assumeYes bool) prompt.ConfirmationPrompter {
	if factory != nil {
		prompter := factory(command, assumeYes)
		if prompter != nil {
			return prompter
		}
	}
	if assumeYes {
		return prompt.NewFixedConfirmationPrompter(command.OutOrStdout(), true)
	}
	if !prompt.IsInteractive(command.InOrStdin()) {
		logger.Warn(nonInteractiveInputMessageConstant)
	}
	return prompt.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}

func resolveConfiguration(provider ConfigurationProvider) workflow.Configuration {
	if provider == nil {
		return workflow.Configuration{}
	}
	return provider().Sanitize()
}

// resolveProjectPath applies the --project flag over configuration and makes the result absolute.
func resolveProjectPath(command *cobra.Command, configuredPath string, fileSystem filesystem.FileSystem) (string, error) {
	projectPath := strings.TrimSpace(configuredPath)
	if command != nil && command.Flags().Changed(projectFlagNameConstant) {
		flagValue, _ := command.Flags().GetString(projectFlagNameConstant)
		projectPath = strings.TrimSpace(flagValue)
	}

	if len(projectPath) == 0 {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(projectPathResolutionTemplateConstant, workingDirectoryError)
		}
		projectPath = workingDirectory
	}

	absolutePath, absoluteError := fileSystem.Abs(projectPath)
	if absoluteError != nil {
		return "", fmt.Errorf(projectPathResolutionTemplateConstant, absoluteError)
	}
	return filepath.Clean(absolutePath), nil
}
