package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/jmigrate/internal/utils"
)

const (
	configurationCommandUseConstant              = "config"
	configurationCommandShortDescriptionConstant = "Print the effective configuration"
	configurationCommandLongDescriptionConstant  = "config prints the configuration resolved from embedded defaults, the configuration file and JMIGRATE_ environment variables as YAML."
	configurationSourceCommentTemplateConstant   = "# configuration file: %s\n"
	configurationEncodeErrorTemplateConstant     = "unable to encode configuration: %w"
	yamlIndentationConstant                      = 2
)

// ConfigurationCommandBuilder assembles the config command.
type ConfigurationCommandBuilder struct {
	ConfigurationProvider func() ApplicationConfiguration
}

// Build constructs the config command.
func (builder *ConfigurationCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   configurationCommandUseConstant,
		Short: configurationCommandShortDescriptionConstant,
		Long:  configurationCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *ConfigurationCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := ApplicationConfiguration{}
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration.Migration = configuration.Migration.Sanitize()

	output := utils.NewFlushingWriter(command.OutOrStdout())
	configurationFilePath, configurationFileAvailable := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	if configurationFileAvailable && len(configurationFilePath) > 0 {
		fmt.Fprintf(output, configurationSourceCommentTemplateConstant, configurationFilePath)
	}

	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(yamlIndentationConstant)
	if encodeError := encoder.Encode(configuration); encodeError != nil {
		return fmt.Errorf(configurationEncodeErrorTemplateConstant, encodeError)
	}
	return encoder.Close()
}
