package workflow

import (
	"errors"
	"fmt"
)

const (
	operatorDeclinedMessageConstant        = "operator declined to continue after test failures"
	interruptedMessageConstant             = "migration interrupted by user"
	fatalErrorTemplateConstant             = "%s failed: %s"
	fatalErrorWithCauseTemplateConstant    = "%s failed: %s: %v"
	interruptedErrorTemplateConstant       = "%w during %s: %w"
	missingDependencyErrorTemplateConstant = "%w: %s"
	dependencyNotConfiguredMessageConstant = "workflow dependency not configured"
)

var (
	// ErrOperatorDeclined indicates the operator refused to continue after test failures.
	ErrOperatorDeclined = errors.New(operatorDeclinedMessageConstant)
	// ErrInterrupted indicates the run context was cancelled.
	ErrInterrupted = errors.New(interruptedMessageConstant)
	// ErrDependencyNotConfigured indicates the orchestrator was constructed without a collaborator.
	ErrDependencyNotConfigured = errors.New(dependencyNotConfiguredMessageConstant)
)

// FatalError marks a step failure that ends the run.
type FatalError struct {
	Step   Step
	Reason string
	Cause  error
}

// Error describes the failed step.
func (fatalError FatalError) Error() string {
	if fatalError.Cause == nil {
		return fmt.Sprintf(fatalErrorTemplateConstant, fatalError.Step, fatalError.Reason)
	}
	return fmt.Sprintf(fatalErrorWithCauseTemplateConstant, fatalError.Step, fatalError.Reason, fatalError.Cause)
}

// Unwrap exposes the underlying cause.
func (fatalError FatalError) Unwrap() error {
	return fatalError.Cause
}

func interruptedError(step Step, cause error) error {
	return fmt.Errorf(interruptedErrorTemplateConstant, ErrInterrupted, step, cause)
}

func missingDependencyError(dependencyName string) error {
	return fmt.Errorf(missingDependencyErrorTemplateConstant, ErrDependencyNotConfigured, dependencyName)
}
