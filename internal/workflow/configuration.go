package workflow

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/jmigrate/internal/descriptor"
)

const (
	invalidConfigurationTemplateConstant = "invalid migration configuration: %s %s"
	requiredValueMessageConstant         = "must be provided"
	projectPathFieldConstant             = "project_path"
	baseBranchFieldConstant              = "base_branch"
	remoteFieldConstant                  = "remote"
	branchPrefixFieldConstant            = "branch_prefix"
	backupBranchPrefixFieldConstant      = "backup_branch_prefix"
	descriptorFileFieldConstant          = "descriptor_file"
	recipeFieldConstant                  = "recipe"
	rewritePluginFieldConstant           = "rewrite_plugin"
	pullRequestTitleFieldConstant        = "pull_request.title"
)

// Configuration captures the settings of one migration run.
type Configuration struct {
	ProjectPath        string                   `mapstructure:"project_path" yaml:"project_path"`
	BaseBranch         string                   `mapstructure:"base_branch" yaml:"base_branch"`
	Remote             string                   `mapstructure:"remote" yaml:"remote"`
	BranchPrefix       string                   `mapstructure:"branch_prefix" yaml:"branch_prefix"`
	BackupBranchPrefix string                   `mapstructure:"backup_branch_prefix" yaml:"backup_branch_prefix"`
	DescriptorFile     string                   `mapstructure:"descriptor_file" yaml:"descriptor_file"`
	BackupDescriptor   bool                     `mapstructure:"backup_descriptor" yaml:"backup_descriptor"`
	Recipe             string                   `mapstructure:"recipe" yaml:"recipe"`
	RewritePlugin      string                   `mapstructure:"rewrite_plugin" yaml:"rewrite_plugin"`
	DependencyIncludes []string                 `mapstructure:"dependency_includes" yaml:"dependency_includes"`
	AssumeYes          bool                     `mapstructure:"assume_yes" yaml:"assume_yes"`
	PullRequest        PullRequestConfiguration `mapstructure:"pull_request" yaml:"pull_request"`
}

// PullRequestConfiguration describes the pull request opened for the migration branch.
type PullRequestConfiguration struct {
	Title string `mapstructure:"title" yaml:"title"`
}

// InvalidConfigurationError reports a configuration field that cannot be used.
type InvalidConfigurationError struct {
	FieldName string
	Message   string
}

// Error describes the invalid field.
func (configurationError InvalidConfigurationError) Error() string {
	return fmt.Sprintf(invalidConfigurationTemplateConstant, configurationError.FieldName, configurationError.Message)
}

// Sanitize trims every string value and drops blank dependency include patterns.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.ProjectPath = strings.TrimSpace(configuration.ProjectPath)
	sanitized.BaseBranch = strings.TrimSpace(configuration.BaseBranch)
	sanitized.Remote = strings.TrimSpace(configuration.Remote)
	sanitized.BranchPrefix = strings.TrimSpace(configuration.BranchPrefix)
	sanitized.BackupBranchPrefix = strings.TrimSpace(configuration.BackupBranchPrefix)
	sanitized.DescriptorFile = strings.TrimSpace(configuration.DescriptorFile)
	sanitized.Recipe = strings.TrimSpace(configuration.Recipe)
	sanitized.RewritePlugin = strings.TrimSpace(configuration.RewritePlugin)
	sanitized.PullRequest.Title = strings.TrimSpace(configuration.PullRequest.Title)

	sanitized.DependencyIncludes = nil
	for _, dependencyInclude := range configuration.DependencyIncludes {
		trimmedInclude := strings.TrimSpace(dependencyInclude)
		if len(trimmedInclude) > 0 {
			sanitized.DependencyIncludes = append(sanitized.DependencyIncludes, trimmedInclude)
		}
	}
	return sanitized
}

// Validate reports the first required field left empty.
func (configuration Configuration) Validate() error {
	requiredFields := []struct {
		name  string
		value string
	}{
		{name: projectPathFieldConstant, value: configuration.ProjectPath},
		{name: baseBranchFieldConstant, value: configuration.BaseBranch},
		{name: remoteFieldConstant, value: configuration.Remote},
		{name: branchPrefixFieldConstant, value: configuration.BranchPrefix},
		{name: backupBranchPrefixFieldConstant, value: configuration.BackupBranchPrefix},
		{name: descriptorFileFieldConstant, value: configuration.DescriptorFile},
		{name: recipeFieldConstant, value: configuration.Recipe},
		{name: rewritePluginFieldConstant, value: configuration.RewritePlugin},
		{name: pullRequestTitleFieldConstant, value: configuration.PullRequest.Title},
	}
	for _, requiredField := range requiredFields {
		if len(strings.TrimSpace(requiredField.value)) == 0 {
			return InvalidConfigurationError{FieldName: requiredField.name, Message: requiredValueMessageConstant}
		}
	}
	return nil
}

// DescriptorPath joins the project path and the descriptor file name.
func (configuration Configuration) DescriptorPath() string {
	if filepath.IsAbs(configuration.DescriptorFile) {
		return configuration.DescriptorFile
	}
	return filepath.Join(configuration.ProjectPath, configuration.DescriptorFile)
}

// StagingExclusions lists project-relative paths kept out of the migration commit.
func (configuration Configuration) StagingExclusions() []string {
	if !configuration.BackupDescriptor {
		return nil
	}
	relativeDescriptor, relativeError := filepath.Rel(configuration.ProjectPath, configuration.DescriptorPath())
	if relativeError != nil {
		relativeDescriptor = filepath.Base(configuration.DescriptorFile)
	}
	return []string{filepath.ToSlash(descriptor.BackupPath(relativeDescriptor))}
}
