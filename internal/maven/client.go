package maven

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/jmigrate/internal/execshell"
)

const (
	updateSnapshotsFlagConstant              = "-U"
	rewriteRunGoalTemplateConstant           = "%s:run"
	activeRecipesPropertyTemplateConstant    = "-Drewrite.activeRecipes=%s"
	useLatestReleasesGoalConstant            = "versions:use-latest-releases"
	includesPropertyTemplateConstant         = "-Dincludes=%s"
	disallowMajorUpdatesPropertyConstant     = "-DallowMajorUpdates=false"
	cleanPhaseConstant                       = "clean"
	installPhaseConstant                     = "install"
	skipTestsPropertyConstant                = "-DskipTests"
	testPhaseConstant                        = "test"
	listSeparatorConstant                    = ","
	goalErrorTemplateConstant                = "maven %s failed: %v"
	executorNotConfiguredMessageConstant     = "maven executor not configured"
	projectPathRequiredMessageConstant       = "maven project path must be provided"
	pluginRequiredMessageConstant            = "rewrite plugin coordinates must be provided"
	recipeRequiredMessageConstant            = "rewrite recipe must be provided"
	includesRequiredMessageConstant          = "dependency includes must be provided"
	rewriteGoalDescriptionConstant           = Goal("rewrite:run")
	useLatestReleasesGoalDescriptionConstant = Goal(useLatestReleasesGoalConstant)
	buildGoalDescriptionConstant             = Goal("clean install")
	testGoalDescriptionConstant              = Goal(testPhaseConstant)
)

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrProjectPathRequired indicates the client was constructed without a project path.
	ErrProjectPathRequired = errors.New(projectPathRequiredMessageConstant)
	// ErrPluginRequired indicates an empty rewrite plugin coordinate.
	ErrPluginRequired = errors.New(pluginRequiredMessageConstant)
	// ErrRecipeRequired indicates an empty recipe name.
	ErrRecipeRequired = errors.New(recipeRequiredMessageConstant)
	// ErrIncludesRequired indicates no dependency include pattern was supplied.
	ErrIncludesRequired = errors.New(includesRequiredMessageConstant)
)

// Goal names a Maven invocation for error reporting.
type Goal string

// GoalError reports a Maven invocation that did not succeed.
type GoalError struct {
	Goal  Goal
	Cause error
}

// Error describes the failed goal.
func (goalError GoalError) Error() string {
	return fmt.Sprintf(goalErrorTemplateConstant, goalError.Goal, goalError.Cause)
}

// Unwrap exposes the underlying failure.
func (goalError GoalError) Unwrap() error {
	return goalError.Cause
}

// StandardError returns the captured standard error of a failed goal, if any.
func StandardError(failure error) string {
	var commandFailedError execshell.CommandFailedError
	if errors.As(failure, &commandFailedError) {
		return strings.TrimSpace(commandFailedError.Result.StandardError)
	}
	return ""
}

// MavenExecutor runs mvn.
type MavenExecutor interface {
	ExecuteMaven(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client runs Maven goals inside a single project directory.
type Client struct {
	executor    MavenExecutor
	projectPath string
}

// NewClient constructs a Client bound to projectPath.
func NewClient(executor MavenExecutor, projectPath string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if len(strings.TrimSpace(projectPath)) == 0 {
		return nil, ErrProjectPathRequired
	}
	return &Client{executor: executor, projectPath: projectPath}, nil
}

// RunRewriteRecipe runs `mvn -U <plugin>:run -Drewrite.activeRecipes=<recipe>`.
func (client *Client) RunRewriteRecipe(executionContext context.Context, pluginCoordinates string, recipe string) error {
	if len(strings.TrimSpace(pluginCoordinates)) == 0 {
		return ErrPluginRequired
	}
	if len(strings.TrimSpace(recipe)) == 0 {
		return ErrRecipeRequired
	}
	return client.run(
		executionContext,
		rewriteGoalDescriptionConstant,
		updateSnapshotsFlagConstant,
		fmt.Sprintf(rewriteRunGoalTemplateConstant, pluginCoordinates),
		fmt.Sprintf(activeRecipesPropertyTemplateConstant, recipe),
	)
}

// UseLatestReleases runs the versions plugin for the include patterns without major upgrades.
func (client *Client) UseLatestReleases(executionContext context.Context, includes []string) error {
	if len(includes) == 0 {
		return ErrIncludesRequired
	}
	return client.run(
		executionContext,
		useLatestReleasesGoalDescriptionConstant,
		useLatestReleasesGoalConstant,
		fmt.Sprintf(includesPropertyTemplateConstant, strings.Join(includes, listSeparatorConstant)),
		disallowMajorUpdatesPropertyConstant,
	)
}

// CleanInstallSkippingTests runs `mvn clean install -DskipTests`.
func (client *Client) CleanInstallSkippingTests(executionContext context.Context) error {
	return client.run(executionContext, buildGoalDescriptionConstant, cleanPhaseConstant, installPhaseConstant, skipTestsPropertyConstant)
}

// Test runs `mvn test`.
func (client *Client) Test(executionContext context.Context) error {
	return client.run(executionContext, testGoalDescriptionConstant, testPhaseConstant)
}

func (client *Client) run(executionContext context.Context, goal Goal, arguments ...string) error {
	_, executionError := client.executor.ExecuteMaven(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: client.projectPath,
	})
	if executionError != nil {
		return GoalError{Goal: goal, Cause: executionError}
	}
	return nil
}
