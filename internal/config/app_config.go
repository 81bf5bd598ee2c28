package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/temirov/ctxtree/internal/utils"
)

const (
	// MaxDepthKey is the viper key of the depth option; it is decoded separately from the struct.
	MaxDepthKey = "maxDepth"
	// ExcludeKey is the viper key of the exclude list. A supplied list replaces the defaults
	// instead of being decoded over them.
	ExcludeKey = "exclude"

	errorBindFlagsFormat       = "bind flags: %w"
	errorBindEnvironmentFormat = "bind environment for %s: %w"
	errorDecodeFormat          = "decode configuration: %w"
)

// configurationKeys lists every key that may be supplied through CTXTREE_* variables.
var configurationKeys = []string{
	"rootDir",
	"output",
	ExcludeKey,
	"includeContent",
	MaxDepthKey,
	"showHidden",
	"contentSizeLimit",
	"format",
	"tokens",
	"model",
	"copy",
}

// LoadOptions controls how the configuration is assembled.
type LoadOptions struct {
	// FlagSet supplies command line values; unchanged flags fall back to the environment and then to defaults.
	FlagSet *pflag.FlagSet
}

// LoadConfiguration merges defaults, CTXTREE_* environment variables and
// command line flags, in increasing order of precedence, and validates the result.
func LoadConfiguration(options LoadOptions) (Configuration, error) {
	reader := viper.New()
	reader.SetEnvPrefix(utils.EnvironmentPrefix)
	for _, key := range configurationKeys {
		if bindError := reader.BindEnv(key); bindError != nil {
			return Configuration{}, fmt.Errorf(errorBindEnvironmentFormat, key, bindError)
		}
	}
	if options.FlagSet != nil {
		if bindError := reader.BindPFlags(options.FlagSet); bindError != nil {
			return Configuration{}, fmt.Errorf(errorBindFlagsFormat, bindError)
		}
	}

	configuration := DefaultConfiguration()
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return Configuration{}, fmt.Errorf(errorDecodeFormat, decodeError)
	}
	if reader.IsSet(MaxDepthKey) {
		depth, depthError := ParseDepth(reader.GetString(MaxDepthKey))
		if depthError != nil {
			return Configuration{}, depthError
		}
		configuration.MaxDepth = depth
	}
	if reader.IsSet(ExcludeKey) {
		configuration.Exclude = reader.GetStringSlice(ExcludeKey)
	}
	configuration.Exclude = utils.NormalizePatterns(configuration.Exclude)
	configuration.Format = strings.ToLower(strings.TrimSpace(configuration.Format))

	if validationError := configuration.Validate(); validationError != nil {
		return Configuration{}, validationError
	}
	return configuration, nil
}
