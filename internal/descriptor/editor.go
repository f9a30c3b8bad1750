package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/jmigrate/internal/filesystem"
)

const (
	backupSuffixConstant                   = ".backup"
	descriptorNotFoundMessageConstant      = "project descriptor not found"
	descriptorNotFoundTemplateConstant     = "%w: %s"
	descriptorReadErrorTemplateConstant    = "failed to read project descriptor %s: %w"
	descriptorWriteErrorTemplateConstant   = "failed to write project descriptor %s: %w"
	backupWriteErrorTemplateConstant       = "failed to write project descriptor backup %s: %w"
	loggerNotConfiguredMessageConstant     = "descriptor editor logger not configured"
	fileSystemNotConfiguredMessageConstant = "descriptor editor file system not configured"
	updatingMessageConstant                = "Updating Java version markers"
	updatedMessageConstant                 = "Java version markers updated"
	noMarkersMessageConstant               = "No Java 8 version markers found; descriptor left unchanged"
	backupCreatedMessageConstant           = "Project descriptor backup written"
	descriptorFieldNameConstant            = "descriptor"
	backupFieldNameConstant                = "backup"
	replacementCountFieldNameConstant      = "replacements"
)

var (
	// ErrDescriptorNotFound indicates the project descriptor does not exist.
	ErrDescriptorNotFound = errors.New(descriptorNotFoundMessageConstant)
	// ErrLoggerNotConfigured indicates the editor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrFileSystemNotConfigured indicates the editor was constructed without a file system.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// VersionMarkerReplacement is one literal substitution applied to the descriptor.
type VersionMarkerReplacement struct {
	Original    string
	Replacement string
}

// versionMarkerReplacements is applied in order; each entry replaces every occurrence.
var versionMarkerReplacements = []VersionMarkerReplacement{
	{Original: "<java.version>1.8</java.version>", Replacement: "<java.version>11</java.version>"},
	{Original: "<java.version>8</java.version>", Replacement: "<java.version>11</java.version>"},
	{Original: "<maven.compiler.source>1.8</maven.compiler.source>", Replacement: "<maven.compiler.source>11</maven.compiler.source>"},
	{Original: "<maven.compiler.target>1.8</maven.compiler.target>", Replacement: "<maven.compiler.target>11</maven.compiler.target>"},
}

// VersionMarkerReplacements returns a copy of the ordered substitutions.
func VersionMarkerReplacements() []VersionMarkerReplacement {
	return append([]VersionMarkerReplacement(nil), versionMarkerReplacements...)
}

// ApplyVersionMarkers applies every substitution in order and returns the new
// content with the number of occurrences replaced.
func ApplyVersionMarkers(content string) (string, int) {
	replacementCount := 0
	for _, markerReplacement := range versionMarkerReplacements {
		occurrences := strings.Count(content, markerReplacement.Original)
		if occurrences == 0 {
			continue
		}
		replacementCount += occurrences
		content = strings.ReplaceAll(content, markerReplacement.Original, markerReplacement.Replacement)
	}
	return content, replacementCount
}

// UpdateResult describes the outcome of UpdateVersionMarkers.
type UpdateResult struct {
	DescriptorPath   string
	BackupPath       string
	ReplacementCount int
}

// Changed reports whether the descriptor was rewritten.
func (result UpdateResult) Changed() bool {
	return result.ReplacementCount > 0
}

// Editor updates version markers in a descriptor on disk.
type Editor struct {
	logger           *zap.Logger
	fileSystem       filesystem.FileSystem
	backupDescriptor bool
}

// NewEditor constructs an Editor. When backupDescriptor is set, the original
// content is copied to <descriptor>.backup before the descriptor is rewritten.
func NewEditor(logger *zap.Logger, fileSystem filesystem.FileSystem, backupDescriptor bool) (*Editor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Editor{logger: logger, fileSystem: fileSystem, backupDescriptor: backupDescriptor}, nil
}

// BackupPath returns the path the backup copy of descriptorPath is written to.
func BackupPath(descriptorPath string) string {
	return descriptorPath + backupSuffixConstant
}

// UpdateVersionMarkers rewrites the markers in descriptorPath. A missing file
// yields ErrDescriptorNotFound and nothing is written.
func (editor *Editor) UpdateVersionMarkers(descriptorPath string) (UpdateResult, error) {
	editor.logger.Info(updatingMessageConstant, zap.String(descriptorFieldNameConstant, descriptorPath))
	result := UpdateResult{DescriptorPath: descriptorPath}

	descriptorInfo, statError := editor.fileSystem.Stat(descriptorPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return result, fmt.Errorf(descriptorNotFoundTemplateConstant, ErrDescriptorNotFound, descriptorPath)
		}
		return result, fmt.Errorf(descriptorReadErrorTemplateConstant, descriptorPath, statError)
	}
	if descriptorInfo.IsDir() {
		return result, fmt.Errorf(descriptorNotFoundTemplateConstant, ErrDescriptorNotFound, descriptorPath)
	}

	originalContent, readError := editor.fileSystem.ReadFile(descriptorPath)
	if readError != nil {
		return result, fmt.Errorf(descriptorReadErrorTemplateConstant, descriptorPath, readError)
	}

	updatedContent, replacementCount := ApplyVersionMarkers(string(originalContent))
	if replacementCount == 0 {
		editor.logger.Warn(noMarkersMessageConstant, zap.String(descriptorFieldNameConstant, descriptorPath))
		return result, nil
	}

	permissions := descriptorInfo.Mode().Perm()
	if editor.backupDescriptor {
		backupPath := BackupPath(descriptorPath)
		if writeError := editor.fileSystem.WriteFile(backupPath, originalContent, permissions); writeError != nil {
			return result, fmt.Errorf(backupWriteErrorTemplateConstant, backupPath, writeError)
		}
		result.BackupPath = backupPath
		editor.logger.Info(backupCreatedMessageConstant, zap.String(backupFieldNameConstant, backupPath))
	}

	if writeError := editor.fileSystem.WriteFile(descriptorPath, []byte(updatedContent), permissions); writeError != nil {
		return result, fmt.Errorf(descriptorWriteErrorTemplateConstant, descriptorPath, writeError)
	}
	result.ReplacementCount = replacementCount

	editor.logger.Info(
		updatedMessageConstant,
		zap.String(descriptorFieldNameConstant, descriptorPath),
		zap.Int(replacementCountFieldNameConstant, replacementCount),
	)
	return result, nil
}
