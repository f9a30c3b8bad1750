package prerequisites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/execshell"
	"github.com/temirov/jmigrate/internal/filesystem"
)

const (
	javaExecutableNameConstant               = "java"
	mavenExecutableNameConstant              = "mvn"
	gitExecutableNameConstant                = "git"
	javaInstallHintConstant                  = "Java is not installed. Please install Java 11."
	mavenInstallHintConstant                 = "Maven is not installed. Please install Maven."
	gitInstallHintConstant                   = "Git is not installed. Please install Git."
	javaVersionFlagConstant                  = "-version"
	projectDirectoryMissingTemplateConstant  = "Project directory not found: %s"
	unknownJavaVersionConstant               = "unknown version"
	versionQuoteConstant                     = "\""
	checkingPrerequisitesMessageConstant     = "Checking prerequisites"
	toolMissingMessageConstant               = "Required tool not found"
	javaDetectedMessageConstant              = "Found Java"
	javaVersionUnavailableMessageConstant    = "Unable to determine Java version"
	projectMissingMessageConstant            = "Project directory not found"
	prerequisitesMetMessageConstant          = "All prerequisites met"
	toolFieldNameConstant                    = "tool"
	javaVersionFieldNameConstant             = "java_version"
	javaVersionLineFieldNameConstant         = "java_version_output"
	projectPathFieldNameConstant             = "project_path"
	loggerNotConfiguredMessageConstant       = "prerequisite checker logger not configured"
	locatorNotConfiguredMessageConstant      = "prerequisite checker tool locator not configured"
	javaExecutorNotConfiguredMessageConstant = "prerequisite checker java executor not configured"
	fileSystemNotConfiguredMessageConstant   = "prerequisite checker file system not configured"
)

var (
	// ErrLoggerNotConfigured indicates the checker was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrToolLocatorNotConfigured indicates the checker was constructed without a tool locator.
	ErrToolLocatorNotConfigured = errors.New(locatorNotConfiguredMessageConstant)
	// ErrJavaExecutorNotConfigured indicates the checker was constructed without a java executor.
	ErrJavaExecutorNotConfigured = errors.New(javaExecutorNotConfiguredMessageConstant)
	// ErrFileSystemNotConfigured indicates the checker was constructed without a file system.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// ToolRequirement names an executable that must be on PATH and the hint shown when it is not.
type ToolRequirement struct {
	ExecutableName string
	InstallHint    string
}

// DefaultToolRequirements returns java, mvn and git in the order they are checked.
func DefaultToolRequirements() []ToolRequirement {
	return []ToolRequirement{
		{ExecutableName: javaExecutableNameConstant, InstallHint: javaInstallHintConstant},
		{ExecutableName: mavenExecutableNameConstant, InstallHint: mavenInstallHintConstant},
		{ExecutableName: gitExecutableNameConstant, InstallHint: gitInstallHintConstant},
	}
}

// JavaExecutor runs the java launcher.
type JavaExecutor interface {
	ExecuteJava(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Dependencies bundles the collaborators of Checker.
type Dependencies struct {
	Logger       *zap.Logger
	ToolLocator  execshell.ToolLocator
	JavaExecutor JavaExecutor
	FileSystem   filesystem.FileSystem
}

// Report describes the outcome of a prerequisite check.
type Report struct {
	MissingTool             *ToolRequirement
	ProjectDirectoryMissing bool
	ProjectPath             string
	JavaVersion             string
}

// Satisfied reports whether every prerequisite holds.
func (report Report) Satisfied() bool {
	return report.MissingTool == nil && !report.ProjectDirectoryMissing
}

// FailureReason describes the first unmet prerequisite, or returns an empty string.
func (report Report) FailureReason() string {
	switch {
	case report.MissingTool != nil:
		return report.MissingTool.InstallHint
	case report.ProjectDirectoryMissing:
		return fmt.Sprintf(projectDirectoryMissingTemplateConstant, report.ProjectPath)
	default:
		return ""
	}
}

// Checker verifies tools and the project directory.
type Checker struct {
	logger       *zap.Logger
	toolLocator  execshell.ToolLocator
	javaExecutor JavaExecutor
	fileSystem   filesystem.FileSystem
	projectPath  string
	requirements []ToolRequirement
}

// NewChecker constructs a Checker for projectPath with the default tool requirements.
func NewChecker(dependencies Dependencies, projectPath string) (*Checker, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.ToolLocator == nil {
		return nil, ErrToolLocatorNotConfigured
	}
	if dependencies.JavaExecutor == nil {
		return nil, ErrJavaExecutorNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Checker{
		logger:       dependencies.Logger,
		toolLocator:  dependencies.ToolLocator,
		javaExecutor: dependencies.JavaExecutor,
		fileSystem:   dependencies.FileSystem,
		projectPath:  projectPath,
		requirements: DefaultToolRequirements(),
	}, nil
}

// Check verifies each required tool in order, logs the detected Java version and
// confirms the project directory exists. It stops at the first missing tool. The
// returned error is non-nil only when the context is cancelled.
func (checker *Checker) Check(executionContext context.Context) (Report, error) {
	checker.logger.Info(checkingPrerequisitesMessageConstant, zap.String(projectPathFieldNameConstant, checker.projectPath))
	report := Report{ProjectPath: checker.projectPath}

	for requirementIndex := range checker.requirements {
		requirement := checker.requirements[requirementIndex]
		if !execshell.CommandExists(checker.toolLocator, requirement.ExecutableName) {
			checker.logger.Error(toolMissingMessageConstant, zap.String(toolFieldNameConstant, requirement.ExecutableName))
			report.MissingTool = &requirement
			return report, nil
		}
	}

	report.JavaVersion = checker.detectJavaVersion(executionContext)
	if contextError := executionContext.Err(); contextError != nil {
		return report, contextError
	}

	if !filesystem.IsDirectory(checker.fileSystem, checker.projectPath) {
		checker.logger.Error(projectMissingMessageConstant, zap.String(projectPathFieldNameConstant, checker.projectPath))
		report.ProjectDirectoryMissing = true
		return report, nil
	}

	checker.logger.Info(prerequisitesMetMessageConstant)
	return report, nil
}

// detectJavaVersion runs java -version, which prints to standard error. Failures are logged and ignored.
func (checker *Checker) detectJavaVersion(executionContext context.Context) string {
	executionResult, executionError := checker.javaExecutor.ExecuteJava(executionContext, execshell.CommandDetails{
		Arguments: []string{javaVersionFlagConstant},
	})
	if executionError != nil {
		checker.logger.Debug(javaVersionUnavailableMessageConstant, zap.Error(executionError))
		return ""
	}

	versionLine := firstNonEmptyLine(executionResult.StandardError)
	if len(versionLine) == 0 {
		versionLine = firstNonEmptyLine(executionResult.StandardOutput)
	}
	javaVersion := ParseJavaVersion(versionLine)
	checker.logger.Info(
		javaDetectedMessageConstant,
		zap.String(javaVersionFieldNameConstant, javaVersion),
		zap.String(javaVersionLineFieldNameConstant, versionLine),
	)
	return javaVersion
}

// ParseJavaVersion extracts the quoted version from a java -version banner line
// such as `openjdk version "11.0.21" 2023-10-17`.
func ParseJavaVersion(versionLine string) string {
	openingQuoteIndex := strings.Index(versionLine, versionQuoteConstant)
	if openingQuoteIndex == -1 {
		return unknownJavaVersionConstant
	}
	remainder := versionLine[openingQuoteIndex+1:]
	closingQuoteIndex := strings.Index(remainder, versionQuoteConstant)
	if closingQuoteIndex <= 0 {
		return unknownJavaVersionConstant
	}
	return remainder[:closingQuoteIndex]
}

func firstNonEmptyLine(output string) string {
	for _, outputLine := range strings.Split(output, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) > 0 {
			return trimmedLine
		}
	}
	return ""
}
