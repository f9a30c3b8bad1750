package migration

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/maven"
)

const (
	remediationStartedMessageConstant     = "Initial build failed. Applying fixes"
	dependencyUpdateFailedMessageConstant = "Dependency update completed with warnings"
	dependencyUpdatedMessageConstant      = "Dependencies updated to latest minor releases"
	remediationCompletedMessageConstant   = "Remediation completed"
	includesFieldNameConstant             = "includes"
)

// DependencyUpdater updates dependency versions matching include patterns.
type DependencyUpdater interface {
	UseLatestReleases(executionContext context.Context, includes []string) error
}

// Remediator re-runs the recipe and updates dependencies after a failed build.
type Remediator struct {
	logger             *zap.Logger
	invoker            *Invoker
	dependencyUpdater  DependencyUpdater
	dependencyIncludes []string
}

// NewRemediator constructs a Remediator.
func NewRemediator(logger *zap.Logger, invoker *Invoker, dependencyUpdater DependencyUpdater, dependencyIncludes []string) (*Remediator, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if invoker == nil {
		return nil, ErrInvokerNotConfigured
	}
	if dependencyUpdater == nil {
		return nil, ErrDependencyUpdaterNotConfigured
	}
	return &Remediator{
		logger:             logger,
		invoker:            invoker,
		dependencyUpdater:  dependencyUpdater,
		dependencyIncludes: append([]string(nil), dependencyIncludes...),
	}, nil
}

// AttemptFix runs the recipe again, then the dependency update. Failures of
// either are logged and completion is always reported.
func (remediator *Remediator) AttemptFix(executionContext context.Context) {
	remediator.logger.Warn(remediationStartedMessageConstant)
	remediator.invoker.RunRecipe(executionContext)

	if len(remediator.dependencyIncludes) > 0 {
		updateError := remediator.dependencyUpdater.UseLatestReleases(executionContext, remediator.dependencyIncludes)
		if updateError != nil {
			remediator.logger.Warn(
				dependencyUpdateFailedMessageConstant,
				zap.Strings(includesFieldNameConstant, remediator.dependencyIncludes),
				zap.String(standardErrorFieldNameConstant, maven.StandardError(updateError)),
				zap.Error(updateError),
			)
		} else {
			remediator.logger.Info(dependencyUpdatedMessageConstant, zap.Strings(includesFieldNameConstant, remediator.dependencyIncludes))
		}
	}

	remediator.logger.Info(remediationCompletedMessageConstant)
}
