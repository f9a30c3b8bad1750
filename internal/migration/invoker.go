package migration

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/filesystem"
	"github.com/temirov/jmigrate/internal/maven"
)

const (
	coordinateSeparatorConstant                   = ":"
	runningRecipeMessageConstant                  = "Running OpenRewrite migration"
	pluginMissingMessageConstant                  = "OpenRewrite plugin not found in project descriptor; running it anyway"
	descriptorUnreadableMessageConstant           = "Unable to read project descriptor while looking for the OpenRewrite plugin"
	recipeAppliedMessageConstant                  = "OpenRewrite migration applied"
	recipeWarningsMessageConstant                 = "OpenRewrite migration completed with warnings"
	recipeFieldNameConstant                       = "recipe"
	pluginFieldNameConstant                       = "plugin"
	descriptorFieldNameConstant                   = "descriptor"
	standardErrorFieldNameConstant                = "standard_error"
	loggerNotConfiguredMessageConstant            = "migration logger not configured"
	fileSystemNotConfiguredMessageConstant        = "migration file system not configured"
	recipeRunnerNotConfiguredMessageConstant      = "migration recipe runner not configured"
	dependencyUpdaterNotConfiguredMessageConstant = "remediation dependency updater not configured"
	invokerNotConfiguredMessageConstant           = "remediation invoker not configured"
)

var (
	// ErrLoggerNotConfigured indicates a missing logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrFileSystemNotConfigured indicates a missing file system.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
	// ErrRecipeRunnerNotConfigured indicates a missing recipe runner.
	ErrRecipeRunnerNotConfigured = errors.New(recipeRunnerNotConfiguredMessageConstant)
	// ErrDependencyUpdaterNotConfigured indicates a missing dependency updater.
	ErrDependencyUpdaterNotConfigured = errors.New(dependencyUpdaterNotConfiguredMessageConstant)
	// ErrInvokerNotConfigured indicates the remediator was constructed without an invoker.
	ErrInvokerNotConfigured = errors.New(invokerNotConfiguredMessageConstant)
)

// RecipeRunner runs an OpenRewrite recipe through the Maven plugin.
type RecipeRunner interface {
	RunRewriteRecipe(executionContext context.Context, pluginCoordinates string, recipe string) error
}

// InvokerSettings identifies the descriptor, plugin and recipe of a run.
type InvokerSettings struct {
	DescriptorPath    string
	PluginCoordinates string
	Recipe            string
}

// InvocationResult reports what a recipe run observed.
type InvocationResult struct {
	PluginDeclared bool
	Succeeded      bool
}

// Invoker runs the configured recipe.
type Invoker struct {
	logger       *zap.Logger
	fileSystem   filesystem.FileSystem
	recipeRunner RecipeRunner
	settings     InvokerSettings
}

// NewInvoker constructs an Invoker.
func NewInvoker(logger *zap.Logger, fileSystem filesystem.FileSystem, recipeRunner RecipeRunner, settings InvokerSettings) (*Invoker, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if recipeRunner == nil {
		return nil, ErrRecipeRunnerNotConfigured
	}
	return &Invoker{logger: logger, fileSystem: fileSystem, recipeRunner: recipeRunner, settings: settings}, nil
}

// Run checks whether the descriptor declares the plugin, then runs the recipe.
// A missing plugin declaration or a failed run is logged as a warning.
func (invoker *Invoker) Run(executionContext context.Context) InvocationResult {
	result := InvocationResult{PluginDeclared: invoker.pluginDeclared()}
	if !result.PluginDeclared {
		invoker.logger.Warn(
			pluginMissingMessageConstant,
			zap.String(pluginFieldNameConstant, invoker.settings.PluginCoordinates),
			zap.String(descriptorFieldNameConstant, invoker.settings.DescriptorPath),
		)
	}
	result.Succeeded = invoker.RunRecipe(executionContext)
	return result
}

// RunRecipe runs the recipe alone and reports whether Maven exited with status zero.
func (invoker *Invoker) RunRecipe(executionContext context.Context) bool {
	invoker.logger.Info(runningRecipeMessageConstant, zap.String(recipeFieldNameConstant, invoker.settings.Recipe))
	runError := invoker.recipeRunner.RunRewriteRecipe(executionContext, invoker.settings.PluginCoordinates, invoker.settings.Recipe)
	if runError != nil {
		invoker.logger.Warn(
			recipeWarningsMessageConstant,
			zap.String(recipeFieldNameConstant, invoker.settings.Recipe),
			zap.String(standardErrorFieldNameConstant, maven.StandardError(runError)),
			zap.Error(runError),
		)
		return false
	}
	invoker.logger.Info(recipeAppliedMessageConstant, zap.String(recipeFieldNameConstant, invoker.settings.Recipe))
	return true
}

// pluginDeclared is a substring search for the plugin artifact id in the descriptor text.
func (invoker *Invoker) pluginDeclared() bool {
	descriptorContent, readError := invoker.fileSystem.ReadFile(invoker.settings.DescriptorPath)
	if readError != nil {
		invoker.logger.Warn(
			descriptorUnreadableMessageConstant,
			zap.String(descriptorFieldNameConstant, invoker.settings.DescriptorPath),
			zap.Error(readError),
		)
		return false
	}
	return strings.Contains(string(descriptorContent), PluginArtifactID(invoker.settings.PluginCoordinates))
}

// PluginArtifactID returns the artifact id of groupId:artifactId coordinates.
func PluginArtifactID(pluginCoordinates string) string {
	trimmedCoordinates := strings.TrimSpace(pluginCoordinates)
	separatorIndex := strings.LastIndex(trimmedCoordinates, coordinateSeparatorConstant)
	if separatorIndex == -1 {
		return trimmedCoordinates
	}
	return trimmedCoordinates[separatorIndex+1:]
}
