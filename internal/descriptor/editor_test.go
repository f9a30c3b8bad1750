package descriptor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/descriptor"
	"github.com/temirov/jmigrate/internal/filesystem"
)

const (
	testDescriptorFileNameConstant = "pom.xml"
	testLegacyDescriptorConstant   = `<project>
  <properties>
    <java.version>1.8</java.version>
    <maven.compiler.source>1.8</maven.compiler.source>
    <maven.compiler.target>1.8</maven.compiler.target>
  </properties>
</project>
`
	testMigratedDescriptorConstant = `<project>
  <properties>
    <java.version>11</java.version>
    <maven.compiler.source>11</maven.compiler.source>
    <maven.compiler.target>11</maven.compiler.target>
  </properties>
</project>
`
)

func TestApplyVersionMarkers(testInstance *testing.T) {
	testCases := []struct {
		name                     string
		content                  string
		expectedContent          string
		expectedReplacementCount int
	}{
		{
			name:                     "legacy_dotted_version",
			content:                  testLegacyDescriptorConstant,
			expectedContent:          testMigratedDescriptorConstant,
			expectedReplacementCount: 3,
		},
		{
			name:                     "short_java_version",
			content:                  "<java.version>8</java.version>",
			expectedContent:          "<java.version>11</java.version>",
			expectedReplacementCount: 1,
		},
		{
			name:                     "every_occurrence_replaced",
			content:                  "<java.version>1.8</java.version><java.version>1.8</java.version>",
			expectedContent:          "<java.version>11</java.version><java.version>11</java.version>",
			expectedReplacementCount: 2,
		},
		{
			name:                     "short_compiler_source_is_not_a_marker",
			content:                  "<maven.compiler.source>8</maven.compiler.source>",
			expectedContent:          "<maven.compiler.source>8</maven.compiler.source>",
			expectedReplacementCount: 0,
		},
		{
			name:                     "whitespace_variant_is_not_a_marker",
			content:                  "<java.version> 1.8 </java.version>",
			expectedContent:          "<java.version> 1.8 </java.version>",
			expectedReplacementCount: 0,
		},
		{
			name:                     "already_migrated",
			content:                  testMigratedDescriptorConstant,
			expectedContent:          testMigratedDescriptorConstant,
			expectedReplacementCount: 0,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			updatedContent, replacementCount := descriptor.ApplyVersionMarkers(testCase.content)
			require.Equal(testInstance, testCase.expectedContent, updatedContent)
			require.Equal(testInstance, testCase.expectedReplacementCount, replacementCount)

			reappliedContent, reappliedCount := descriptor.ApplyVersionMarkers(updatedContent)
			require.Equal(testInstance, updatedContent, reappliedContent)
			require.Zero(testInstance, reappliedCount)
		})
	}
}

func TestVersionMarkerReplacementsOrder(testInstance *testing.T) {
	replacements := descriptor.VersionMarkerReplacements()
	require.Len(testInstance, replacements, 4)
	require.Equal(testInstance, "<java.version>1.8</java.version>", replacements[0].Original)
	require.Equal(testInstance, "<java.version>8</java.version>", replacements[1].Original)
	require.Equal(testInstance, "<maven.compiler.source>1.8</maven.compiler.source>", replacements[2].Original)
	require.Equal(testInstance, "<maven.compiler.target>1.8</maven.compiler.target>", replacements[3].Original)

	replacements[0].Original = "mutated"
	require.Equal(testInstance, "<java.version>1.8</java.version>", descriptor.VersionMarkerReplacements()[0].Original)
}

func TestEditorUpdateVersionMarkers(testInstance *testing.T) {
	testCases := []struct {
		name             string
		initialContent   string
		backupDescriptor bool
		expectedContent  string
		expectedChanged  bool
		expectBackupFile bool
	}{
		{
			name:             "rewrites_with_backup",
			initialContent:   testLegacyDescriptorConstant,
			backupDescriptor: true,
			expectedContent:  testMigratedDescriptorConstant,
			expectedChanged:  true,
			expectBackupFile: true,
		},
		{
			name:             "rewrites_without_backup",
			initialContent:   testLegacyDescriptorConstant,
			backupDescriptor: false,
			expectedContent:  testMigratedDescriptorConstant,
			expectedChanged:  true,
		},
		{
			name:             "no_marker_leaves_file_untouched",
			initialContent:   "<project><maven.compiler.source>8</maven.compiler.source></project>",
			backupDescriptor: true,
			expectedContent:  "<project><maven.compiler.source>8</maven.compiler.source></project>",
			expectedChanged:  false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			projectDirectory := testInstance.TempDir()
			descriptorPath := filepath.Join(projectDirectory, testDescriptorFileNameConstant)
			require.NoError(testInstance, os.WriteFile(descriptorPath, []byte(testCase.initialContent), 0o640))

			editor, creationError := descriptor.NewEditor(zap.NewNop(), filesystem.OSFileSystem{}, testCase.backupDescriptor)
			require.NoError(testInstance, creationError)

			result, updateError := editor.UpdateVersionMarkers(descriptorPath)
			require.NoError(testInstance, updateError)
			require.Equal(testInstance, testCase.expectedChanged, result.Changed())

			updatedContent, readError := os.ReadFile(descriptorPath)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.expectedContent, string(updatedContent))

			descriptorInfo, statError := os.Stat(descriptorPath)
			require.NoError(testInstance, statError)
			require.Equal(testInstance, os.FileMode(0o640), descriptorInfo.Mode().Perm())

			backupContent, backupReadError := os.ReadFile(descriptor.BackupPath(descriptorPath))
			if testCase.expectBackupFile {
				require.NoError(testInstance, backupReadError)
				require.Equal(testInstance, testCase.initialContent, string(backupContent))
				require.Equal(testInstance, descriptor.BackupPath(descriptorPath), result.BackupPath)
			} else {
				require.ErrorIs(testInstance, backupReadError, os.ErrNotExist)
				require.Empty(testInstance, result.BackupPath)
			}
		})
	}
}

func TestEditorMissingDescriptorWritesNothing(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	descriptorPath := filepath.Join(projectDirectory, testDescriptorFileNameConstant)

	editor, creationError := descriptor.NewEditor(zap.NewNop(), filesystem.OSFileSystem{}, true)
	require.NoError(testInstance, creationError)

	result, updateError := editor.UpdateVersionMarkers(descriptorPath)
	require.ErrorIs(testInstance, updateError, descriptor.ErrDescriptorNotFound)
	require.False(testInstance, result.Changed())

	directoryEntries, readDirectoryError := os.ReadDir(projectDirectory)
	require.NoError(testInstance, readDirectoryError)
	require.Empty(testInstance, directoryEntries)
}

func TestNewEditorValidatesDependencies(testInstance *testing.T) {
	_, loggerError := descriptor.NewEditor(nil, filesystem.OSFileSystem{}, true)
	require.ErrorIs(testInstance, loggerError, descriptor.ErrLoggerNotConfigured)

	_, fileSystemError := descriptor.NewEditor(zap.NewNop(), nil, true)
	require.ErrorIs(testInstance, fileSystemError, descriptor.ErrFileSystemNotConfigured)
}
