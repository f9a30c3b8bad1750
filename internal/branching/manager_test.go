package branching_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/jmigrate/internal/branching"
)

const (
	testRepositoryPathConstant      = "/workspace/orders-service"
	testBaseBranchConstant          = "main"
	testRemoteConstant              = "origin"
	testBranchPrefixConstant        = "feature/java-11-migration"
	testBackupBranchPrefixConstant  = "backup-before-migration"
	testExcludedPathConstant        = "pom.xml.backup"
	expectedMigrationBranchConstant = "feature/java-11-migration-20240305-140709"
	expectedBackupBranchConstant    = "backup-before-migration-20240305-140709"
	createBranchCallConstant        = "branch"
	checkoutCallConstant            = "checkout"
	checkoutNewCallConstant         = "checkout -b"
	pullCallConstant                = "pull"
	stageCallConstant               = "add"
	statusCallConstant              = "diff --cached"
	commitCallConstant              = "commit"
	pushCallConstant                = "push"
)

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

type recordingGitOperations struct {
	failures           map[string]error
	hasChanges         bool
	recordedCalls      []string
	recordedBranches   []string
	recordedExclusions []string
	recordedMessage    string
}

func (git *recordingGitOperations) record(call string, branchName string) error {
	git.recordedCalls = append(git.recordedCalls, call)
	if len(branchName) > 0 {
		git.recordedBranches = append(git.recordedBranches, branchName)
	}
	return git.failures[call]
}

func (git *recordingGitOperations) CreateBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	return git.record(createBranchCallConstant, branchName)
}

func (git *recordingGitOperations) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	return git.record(checkoutCallConstant, branchName)
}

func (git *recordingGitOperations) CheckoutNewBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	return git.record(checkoutNewCallConstant, branchName)
}

func (git *recordingGitOperations) Pull(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	return git.record(pullCallConstant, branchName)
}

func (git *recordingGitOperations) StageAll(executionContext context.Context, repositoryPath string, excludedPaths []string) error {
	git.recordedExclusions = excludedPaths
	return git.record(stageCallConstant, "")
}

func (git *recordingGitOperations) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	statusError := git.record(statusCallConstant, "")
	return git.hasChanges, statusError
}

func (git *recordingGitOperations) Commit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	git.recordedMessage = commitMessage
	return git.record(commitCallConstant, "")
}

func (git *recordingGitOperations) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	return git.record(pushCallConstant, branchName)
}

func testSettings() branching.Settings {
	return branching.Settings{
		RepositoryPath:     testRepositoryPathConstant,
		BaseBranch:         testBaseBranchConstant,
		RemoteName:         testRemoteConstant,
		BranchPrefix:       testBranchPrefixConstant,
		BackupBranchPrefix: testBackupBranchPrefixConstant,
		ExcludedPaths:      []string{testExcludedPathConstant},
	}
}

func testClock() fixedClock {
	return fixedClock{instant: time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)}
}

func newManager(testInstance *testing.T, logger *zap.Logger, git *recordingGitOperations) *branching.Manager {
	testInstance.Helper()
	manager, creationError := branching.NewManager(logger, git, testClock(), testSettings())
	require.NoError(testInstance, creationError)
	return manager
}

func TestBranchNamesAreDerivedOnce(testInstance *testing.T) {
	manager := newManager(testInstance, zap.NewNop(), &recordingGitOperations{})

	require.Equal(testInstance, expectedMigrationBranchConstant, manager.BranchName())
	require.Equal(testInstance, expectedBackupBranchConstant, manager.BackupBranchName())
	require.Equal(testInstance, manager.BranchName(), manager.BranchName())
	require.Equal(testInstance, testBaseBranchConstant, manager.BaseBranch())
	require.Equal(testInstance, testRemoteConstant, manager.RemoteName())
	require.Equal(testInstance, testRepositoryPathConstant, manager.RepositoryPath())
}

func TestBackup(testInstance *testing.T) {
	git := &recordingGitOperations{}
	manager := newManager(testInstance, zap.NewNop(), git)

	backupBranch, backupError := manager.Backup(context.Background())
	require.NoError(testInstance, backupError)
	require.Equal(testInstance, expectedBackupBranchConstant, backupBranch)
	require.Equal(testInstance, []string{createBranchCallConstant}, git.recordedCalls)

	failingGit := &recordingGitOperations{failures: map[string]error{createBranchCallConstant: errors.New("not a git repository")}}
	failingManager := newManager(testInstance, zap.NewNop(), failingGit)
	_, failedBackupError := failingManager.Backup(context.Background())
	require.Error(testInstance, failedBackupError)
	require.Contains(testInstance, failedBackupError.Error(), expectedBackupBranchConstant)
}

func TestCreateMigrationBranch(testInstance *testing.T) {
	testCases := []struct {
		name             string
		failures         map[string]error
		expectError      bool
		expectedWarnings int
	}{
		{
			name: "all_steps_succeed",
		},
		{
			name:             "checkout_and_pull_failures_are_tolerated",
			failures:         map[string]error{checkoutCallConstant: errors.New("pathspec 'main' did not match"), pullCallConstant: errors.New("could not read from remote")},
			expectedWarnings: 2,
		},
		{
			name:        "branch_creation_failure_is_returned",
			failures:    map[string]error{checkoutNewCallConstant: errors.New("branch already exists")},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observedCore, observedLogs := observer.New(zapcore.DebugLevel)
			git := &recordingGitOperations{failures: testCase.failures}
			manager := newManager(testInstance, zap.New(observedCore), git)

			branchName, creationError := manager.CreateMigrationBranch(context.Background())

			require.Equal(testInstance, expectedMigrationBranchConstant, branchName)
			require.Equal(testInstance, []string{checkoutCallConstant, pullCallConstant, checkoutNewCallConstant}, git.recordedCalls)
			require.Equal(testInstance, []string{testBaseBranchConstant, testBaseBranchConstant, expectedMigrationBranchConstant}, git.recordedBranches)
			require.Len(testInstance, observedLogs.FilterLevelExact(zapcore.WarnLevel).All(), testCase.expectedWarnings)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				return
			}
			require.NoError(testInstance, creationError)
		})
	}
}

func TestCommit(testInstance *testing.T) {
	testCases := []struct {
		name            string
		hasChanges      bool
		failures        map[string]error
		expectedOutcome branching.CommitOutcome
		expectedCalls   []string
		expectError     bool
	}{
		{
			name:            "changes_committed",
			hasChanges:      true,
			expectedOutcome: branching.CommitOutcomeCommitted,
			expectedCalls:   []string{stageCallConstant, statusCallConstant, commitCallConstant},
		},
		{
			name:            "nothing_to_commit",
			hasChanges:      false,
			expectedOutcome: branching.CommitOutcomeNothingToCommit,
			expectedCalls:   []string{stageCallConstant, statusCallConstant},
		},
		{
			name:            "commit_failure_is_distinguished",
			hasChanges:      true,
			failures:        map[string]error{commitCallConstant: errors.New("gpg failed to sign the data")},
			expectedOutcome: branching.CommitOutcomeFailed,
			expectedCalls:   []string{stageCallConstant, statusCallConstant, commitCallConstant},
			expectError:     true,
		},
		{
			name:            "stage_failure",
			failures:        map[string]error{stageCallConstant: errors.New("index.lock exists")},
			expectedOutcome: branching.CommitOutcomeFailed,
			expectedCalls:   []string{stageCallConstant},
			expectError:     true,
		},
		{
			name:            "status_failure",
			failures:        map[string]error{statusCallConstant: errors.New("not a git repository")},
			expectedOutcome: branching.CommitOutcomeFailed,
			expectedCalls:   []string{stageCallConstant, statusCallConstant},
			expectError:     true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			git := &recordingGitOperations{failures: testCase.failures, hasChanges: testCase.hasChanges}
			manager := newManager(testInstance, zap.NewNop(), git)

			outcome, commitError := manager.Commit(context.Background())

			require.Equal(testInstance, testCase.expectedOutcome, outcome)
			require.Equal(testInstance, testCase.expectedCalls, git.recordedCalls)
			require.Equal(testInstance, []string{testExcludedPathConstant}, git.recordedExclusions)
			if testCase.expectError {
				require.Error(testInstance, commitError)
			} else {
				require.NoError(testInstance, commitError)
			}
			if outcome == branching.CommitOutcomeCommitted {
				require.Equal(testInstance, branching.CommitMessage(), git.recordedMessage)
			}
		})
	}
}

func TestPush(testInstance *testing.T) {
	git := &recordingGitOperations{}
	manager := newManager(testInstance, zap.NewNop(), git)
	require.NoError(testInstance, manager.Push(context.Background(), expectedMigrationBranchConstant))
	require.Equal(testInstance, []string{expectedMigrationBranchConstant}, git.recordedBranches)

	failingGit := &recordingGitOperations{failures: map[string]error{pushCallConstant: errors.New("permission denied")}}
	failingManager := newManager(testInstance, zap.NewNop(), failingGit)
	pushError := failingManager.Push(context.Background(), expectedMigrationBranchConstant)
	require.Error(testInstance, pushError)
	require.Contains(testInstance, pushError.Error(), "permission denied")
}

func TestCommitMessageDescribesMigration(testInstance *testing.T) {
	commitMessage := branching.CommitMessage()
	require.Contains(testInstance, commitMessage, "Migrate from Java 8 to Java 11\n\n")
	require.Contains(testInstance, commitMessage, "- Applied OpenRewrite migration recipes")
	require.Contains(testInstance, commitMessage, "Migration performed using OpenRewrite Maven Plugin")
}

func TestCommitOutcomeString(testInstance *testing.T) {
	require.Equal(testInstance, "committed", branching.CommitOutcomeCommitted.String())
	require.Equal(testInstance, "nothing to commit", branching.CommitOutcomeNothingToCommit.String())
	require.Equal(testInstance, "failed", branching.CommitOutcomeFailed.String())
	require.Equal(testInstance, "unknown", branching.CommitOutcome(42).String())
}

func TestNewManagerValidation(testInstance *testing.T) {
	_, loggerError := branching.NewManager(nil, &recordingGitOperations{}, testClock(), testSettings())
	require.ErrorIs(testInstance, loggerError, branching.ErrLoggerNotConfigured)

	_, gitError := branching.NewManager(zap.NewNop(), nil, testClock(), testSettings())
	require.ErrorIs(testInstance, gitError, branching.ErrGitNotConfigured)

	_, clockError := branching.NewManager(zap.NewNop(), &recordingGitOperations{}, nil, testSettings())
	require.ErrorIs(testInstance, clockError, branching.ErrClockNotConfigured)

	settings := testSettings()
	settings.BaseBranch = " "
	_, settingsError := branching.NewManager(zap.NewNop(), &recordingGitOperations{}, testClock(), settings)
	require.EqualError(testInstance, settingsError, "branch manager setting base branch must be provided")
}
