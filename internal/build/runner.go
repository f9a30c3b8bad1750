package build

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/jmigrate/internal/maven"
)

const (
	buildingMessageConstant            = "Building project"
	buildSucceededMessageConstant      = "Build successful"
	buildFailedMessageConstant         = "Build failed"
	testingMessageConstant             = "Running tests"
	testsPassedMessageConstant         = "All tests passed"
	testsFailedMessageConstant         = "Some tests failed"
	standardErrorFieldNameConstant     = "standard_error"
	loggerNotConfiguredMessageConstant = "build runner logger not configured"
	phasesNotConfiguredMessageConstant = "build runner maven phases not configured"
)

var (
	// ErrLoggerNotConfigured indicates the runner was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrPhasesNotConfigured indicates the runner was constructed without a Maven client.
	ErrPhasesNotConfigured = errors.New(phasesNotConfiguredMessageConstant)
)

// MavenPhases runs the build and test phases.
type MavenPhases interface {
	CleanInstallSkippingTests(executionContext context.Context) error
	Test(executionContext context.Context) error
}

// Runner runs the build and test phases and reports pass or fail.
type Runner struct {
	logger *zap.Logger
	phases MavenPhases
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger, phases MavenPhases) (*Runner, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if phases == nil {
		return nil, ErrPhasesNotConfigured
	}
	return &Runner{logger: logger, phases: phases}, nil
}

// Build runs `mvn clean install -DskipTests` and reports whether it exited with status zero.
func (runner *Runner) Build(executionContext context.Context) bool {
	runner.logger.Info(buildingMessageConstant)
	return runner.classify(
		runner.phases.CleanInstallSkippingTests(executionContext),
		buildSucceededMessageConstant,
		buildFailedMessageConstant,
		zapcore.ErrorLevel,
	)
}

// Test runs `mvn test` and reports whether it exited with status zero. Failing
// tests are logged as a warning since the operator may still accept them.
func (runner *Runner) Test(executionContext context.Context) bool {
	runner.logger.Info(testingMessageConstant)
	return runner.classify(
		runner.phases.Test(executionContext),
		testsPassedMessageConstant,
		testsFailedMessageConstant,
		zapcore.WarnLevel,
	)
}

func (runner *Runner) classify(phaseError error, successMessage string, failureMessage string, failureLevel zapcore.Level) bool {
	if phaseError == nil {
		runner.logger.Info(successMessage)
		return true
	}
	runner.logger.Log(
		failureLevel,
		failureMessage,
		zap.String(standardErrorFieldNameConstant, maven.StandardError(phaseError)),
		zap.Error(phaseError),
	)
	return false
}
