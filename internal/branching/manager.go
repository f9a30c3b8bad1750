package branching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	branchTimestampLayoutConstant         = "20060102-150405"
	branchNameTemplateConstant            = "%s-%s"
	commitMessageConstant                 = "Migrate from Java 8 to Java 11\n\n- Updated Java version to 11 in pom.xml\n- Applied OpenRewrite migration recipes\n- Fixed deprecated APIs and compatibility issues\n- Updated dependencies to Java 11 compatible versions\n\nMigration performed using OpenRewrite Maven Plugin"
	commitOutcomeCommittedLabelConstant   = "committed"
	commitOutcomeNothingLabelConstant     = "nothing to commit"
	commitOutcomeFailedLabelConstant      = "failed"
	commitOutcomeUnknownLabelConstant     = "unknown"
	creatingBackupMessageConstant         = "Creating backup branch"
	backupCreatedMessageConstant          = "Backup created"
	creatingBranchMessageConstant         = "Creating migration branch"
	checkoutBaseFailedMessageConstant     = "Unable to switch to base branch; creating migration branch from the current branch"
	pullBaseFailedMessageConstant         = "Unable to sync base branch from remote; continuing with local state"
	branchCreatedMessageConstant          = "Migration branch created"
	committingMessageConstant             = "Committing changes"
	committedMessageConstant              = "Changes committed"
	nothingToCommitMessageConstant        = "No changes to commit"
	pushingMessageConstant                = "Pushing branch"
	pushedMessageConstant                 = "Branch pushed"
	branchFieldNameConstant               = "branch"
	baseBranchFieldNameConstant           = "base_branch"
	remoteFieldNameConstant               = "remote"
	loggerNotConfiguredMessageConstant    = "branch manager logger not configured"
	gitNotConfiguredMessageConstant       = "branch manager git operations not configured"
	clockNotConfiguredMessageConstant     = "branch manager clock not configured"
	invalidSettingTemplateConstant        = "branch manager setting %s must be provided"
	repositoryPathSettingNameConstant     = "repository path"
	baseBranchSettingNameConstant         = "base branch"
	remoteSettingNameConstant             = "remote"
	branchPrefixSettingNameConstant       = "branch prefix"
	backupBranchPrefixSettingNameConstant = "backup branch prefix"
	branchCreationErrorTemplateConstant   = "failed to create migration branch %s: %w"
	backupCreationErrorTemplateConstant   = "failed to create backup branch %s: %w"
	commitErrorTemplateConstant           = "failed to commit migration changes: %w"
	pushErrorTemplateConstant             = "failed to push branch %s to %s: %w"
)

var (
	// ErrLoggerNotConfigured indicates the manager was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrGitNotConfigured indicates the manager was constructed without git operations.
	ErrGitNotConfigured = errors.New(gitNotConfiguredMessageConstant)
	// ErrClockNotConfigured indicates the manager was constructed without a clock.
	ErrClockNotConfigured = errors.New(clockNotConfiguredMessageConstant)
)

// GitOperations lists the repository operations used by Manager.
type GitOperations interface {
	CreateBranch(executionContext context.Context, repositoryPath string, branchName string) error
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	CheckoutNewBranch(executionContext context.Context, repositoryPath string, branchName string) error
	Pull(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	StageAll(executionContext context.Context, repositoryPath string, excludedPaths []string) error
	HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	Commit(executionContext context.Context, repositoryPath string, commitMessage string) error
	Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// Clock supplies the timestamp used in branch names.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Settings configures Manager.
type Settings struct {
	RepositoryPath     string
	BaseBranch         string
	RemoteName         string
	BranchPrefix       string
	BackupBranchPrefix string
	// ExcludedPaths are left out of staging, relative to RepositoryPath.
	ExcludedPaths      []string
}

// CommitOutcome classifies the result of Commit.
type CommitOutcome int

// Commit outcomes.
const (
	CommitOutcomeCommitted CommitOutcome = iota
	CommitOutcomeNothingToCommit
	CommitOutcomeFailed
)

// String returns a readable label.
func (outcome CommitOutcome) String() string {
	switch outcome {
	case CommitOutcomeCommitted:
		return commitOutcomeCommittedLabelConstant
	case CommitOutcomeNothingToCommit:
		return commitOutcomeNothingLabelConstant
	case CommitOutcomeFailed:
		return commitOutcomeFailedLabelConstant
	default:
		return commitOutcomeUnknownLabelConstant
	}
}

// CommitMessage returns the message used for the migration commit.
func CommitMessage() string {
	return commitMessageConstant
}

// BranchName joins a prefix and a timestamp as <prefix>-YYYYMMDD-HHMMSS.
func BranchName(prefix string, timestamp time.Time) string {
	return fmt.Sprintf(branchNameTemplateConstant, prefix, timestamp.Format(branchTimestampLayoutConstant))
}

// Manager performs the branch operations of one run. Branch names are fixed at construction.
type Manager struct {
	logger          *zap.Logger
	git             GitOperations
	settings        Settings
	migrationBranch string
	backupBranch    string
}

// NewManager constructs a Manager and derives the backup and migration branch names from clock.
func NewManager(logger *zap.Logger, git GitOperations, clock Clock, settings Settings) (*Manager, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if git == nil {
		return nil, ErrGitNotConfigured
	}
	if clock == nil {
		return nil, ErrClockNotConfigured
	}
	requiredSettings := []struct {
		name  string
		value string
	}{
		{name: repositoryPathSettingNameConstant, value: settings.RepositoryPath},
		{name: baseBranchSettingNameConstant, value: settings.BaseBranch},
		{name: remoteSettingNameConstant, value: settings.RemoteName},
		{name: branchPrefixSettingNameConstant, value: settings.BranchPrefix},
		{name: backupBranchPrefixSettingNameConstant, value: settings.BackupBranchPrefix},
	}
	for _, requiredSetting := range requiredSettings {
		if len(strings.TrimSpace(requiredSetting.value)) == 0 {
			return nil, fmt.Errorf(invalidSettingTemplateConstant, requiredSetting.name)
		}
	}

	startedAt := clock.Now()
	return &Manager{
		logger:          logger,
		git:             git,
		settings:        settings,
		migrationBranch: BranchName(settings.BranchPrefix, startedAt),
		backupBranch:    BranchName(settings.BackupBranchPrefix, startedAt),
	}, nil
}

// BranchName returns the migration branch name of this run.
func (manager *Manager) BranchName() string {
	return manager.migrationBranch
}

// BackupBranchName returns the backup branch name of this run.
func (manager *Manager) BackupBranchName() string {
	return manager.backupBranch
}

// BaseBranch returns the configured base branch.
func (manager *Manager) BaseBranch() string {
	return manager.settings.BaseBranch
}

// Backup creates the backup branch at the current HEAD without switching to it.
func (manager *Manager) Backup(executionContext context.Context) (string, error) {
	manager.logger.Info(creatingBackupMessageConstant, zap.String(branchFieldNameConstant, manager.backupBranch))
	if createError := manager.git.CreateBranch(executionContext, manager.settings.RepositoryPath, manager.backupBranch); createError != nil {
		return manager.backupBranch, fmt.Errorf(backupCreationErrorTemplateConstant, manager.backupBranch, createError)
	}
	manager.logger.Info(backupCreatedMessageConstant, zap.String(branchFieldNameConstant, manager.backupBranch))
	return manager.backupBranch, nil
}

// CreateMigrationBranch switches to the base branch, pulls it and creates the
// migration branch from it. Only the branch creation failure is returned.
func (manager *Manager) CreateMigrationBranch(executionContext context.Context) (string, error) {
	manager.logger.Info(
		creatingBranchMessageConstant,
		zap.String(branchFieldNameConstant, manager.migrationBranch),
		zap.String(baseBranchFieldNameConstant, manager.settings.BaseBranch),
	)

	if checkoutError := manager.git.CheckoutBranch(executionContext, manager.settings.RepositoryPath, manager.settings.BaseBranch); checkoutError != nil {
		manager.logger.Warn(checkoutBaseFailedMessageConstant, zap.String(baseBranchFieldNameConstant, manager.settings.BaseBranch), zap.Error(checkoutError))
	}
	if pullError := manager.git.Pull(executionContext, manager.settings.RepositoryPath, manager.settings.RemoteName, manager.settings.BaseBranch); pullError != nil {
		manager.logger.Warn(
			pullBaseFailedMessageConstant,
			zap.String(remoteFieldNameConstant, manager.settings.RemoteName),
			zap.String(baseBranchFieldNameConstant, manager.settings.BaseBranch),
			zap.Error(pullError),
		)
	}

	if createError := manager.git.CheckoutNewBranch(executionContext, manager.settings.RepositoryPath, manager.migrationBranch); createError != nil {
		return manager.migrationBranch, fmt.Errorf(branchCreationErrorTemplateConstant, manager.migrationBranch, createError)
	}
	manager.logger.Info(branchCreatedMessageConstant, zap.String(branchFieldNameConstant, manager.migrationBranch))
	return manager.migrationBranch, nil
}

// Commit stages every change except the excluded paths and commits it. An empty
// index after staging yields CommitOutcomeNothingToCommit; any git failure
// yields CommitOutcomeFailed with the error.
func (manager *Manager) Commit(executionContext context.Context) (CommitOutcome, error) {
	manager.logger.Info(committingMessageConstant, zap.String(branchFieldNameConstant, manager.migrationBranch))

	if stageError := manager.git.StageAll(executionContext, manager.settings.RepositoryPath, manager.settings.ExcludedPaths); stageError != nil {
		return CommitOutcomeFailed, fmt.Errorf(commitErrorTemplateConstant, stageError)
	}

	hasChanges, statusError := manager.git.HasStagedChanges(executionContext, manager.settings.RepositoryPath)
	if statusError != nil {
		return CommitOutcomeFailed, fmt.Errorf(commitErrorTemplateConstant, statusError)
	}
	if !hasChanges {
		manager.logger.Info(nothingToCommitMessageConstant)
		return CommitOutcomeNothingToCommit, nil
	}

	if commitError := manager.git.Commit(executionContext, manager.settings.RepositoryPath, commitMessageConstant); commitError != nil {
		return CommitOutcomeFailed, fmt.Errorf(commitErrorTemplateConstant, commitError)
	}
	manager.logger.Info(committedMessageConstant, zap.String(branchFieldNameConstant, manager.migrationBranch))
	return CommitOutcomeCommitted, nil
}

// Push pushes branchName to the configured remote.
func (manager *Manager) Push(executionContext context.Context, branchName string) error {
	manager.logger.Info(pushingMessageConstant, zap.String(branchFieldNameConstant, branchName), zap.String(remoteFieldNameConstant, manager.settings.RemoteName))
	if pushError := manager.git.Push(executionContext, manager.settings.RepositoryPath, manager.settings.RemoteName, branchName); pushError != nil {
		return fmt.Errorf(pushErrorTemplateConstant, branchName, manager.settings.RemoteName, pushError)
	}
	manager.logger.Info(pushedMessageConstant, zap.String(branchFieldNameConstant, branchName), zap.String(remoteFieldNameConstant, manager.settings.RemoteName))
	return nil
}

// RemoteName returns the configured remote.
func (manager *Manager) RemoteName() string {
	return manager.settings.RemoteName
}

// RepositoryPath returns the repository the manager operates on.
func (manager *Manager) RepositoryPath() string {
	return manager.settings.RepositoryPath
}
