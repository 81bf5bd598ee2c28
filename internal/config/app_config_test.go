package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/pflag"

	"github.com/temirov/ctxtree/internal/types"
	"github.com/temirov/ctxtree/internal/utils"
)

// newTestFlagSet mirrors the command line flags with plain pflag types.
func newTestFlagSet() *pflag.FlagSet {
	defaults := DefaultConfiguration()
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("rootDir", ".", "")
	flagSet.String("output", "", "")
	flagSet.StringSlice("exclude", defaults.Exclude, "")
	flagSet.Bool("includeContent", false, "")
	flagSet.String(MaxDepthKey, UnlimitedDepthLiteral, "")
	flagSet.Bool("showHidden", false, "")
	flagSet.Int64("contentSizeLimit", defaults.ContentSizeLimit, "")
	flagSet.String("format", types.FormatRaw, "")
	flagSet.Bool("tokens", false, "")
	flagSet.String("model", defaults.TokenModel, "")
	flagSet.Bool("copy", false, "")
	return flagSet
}

func TestLoadConfigurationDefaults(t *testing.T) {
	flagSet := newTestFlagSet()
	if parseError := flagSet.Parse([]string{"--output", "tree.txt"}); parseError != nil {
		t.Fatalf("parse: %v", parseError)
	}

	configuration, loadError := LoadConfiguration(LoadOptions{FlagSet: flagSet})
	if loadError != nil {
		t.Fatalf("LoadConfiguration error: %v", loadError)
	}
	if configuration.RootDir != "." || configuration.OutputPath != "tree.txt" {
		t.Fatalf("unexpected paths: %+v", configuration)
	}
	if !reflect.DeepEqual(configuration.Exclude, utils.DefaultExcludePatterns()) {
		t.Fatalf("expected default excludes, got %v", configuration.Exclude)
	}
	if configuration.MaxDepth != types.UnlimitedDepth {
		t.Fatalf("expected unlimited depth, got %d", configuration.MaxDepth)
	}
	if configuration.ContentSizeLimit != DefaultContentSizeLimitKB || configuration.IncludeContent || configuration.ShowHidden {
		t.Fatalf("unexpected defaults: %+v", configuration)
	}
}

func TestLoadConfigurationFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CTXTREE_OUTPUT", "from-env.txt")
	t.Setenv("CTXTREE_SHOWHIDDEN", "true")
	t.Setenv("CTXTREE_MAXDEPTH", "4")
	t.Setenv("CTXTREE_CONTENTSIZELIMIT", "7")

	flagSet := newTestFlagSet()
	arguments := []string{"--output", "from-flag.txt", "--exclude", "vendor, *.log", "--maxDepth", "2", "--format", "JSON"}
	if parseError := flagSet.Parse(arguments); parseError != nil {
		t.Fatalf("parse: %v", parseError)
	}

	configuration, loadError := LoadConfiguration(LoadOptions{FlagSet: flagSet})
	if loadError != nil {
		t.Fatalf("LoadConfiguration error: %v", loadError)
	}
	if configuration.OutputPath != "from-flag.txt" {
		t.Fatalf("flag should win over environment, got %q", configuration.OutputPath)
	}
	if !configuration.ShowHidden {
		t.Fatalf("environment should enable showHidden")
	}
	if configuration.MaxDepth != 2 {
		t.Fatalf("expected depth 2, got %d", configuration.MaxDepth)
	}
	if configuration.ContentSizeLimit != 7 {
		t.Fatalf("expected size limit from environment, got %d", configuration.ContentSizeLimit)
	}
	if !reflect.DeepEqual(configuration.Exclude, []string{"vendor", "*.log"}) {
		t.Fatalf("unexpected excludes %v", configuration.Exclude)
	}
	if configuration.Format != types.FormatJSON {
		t.Fatalf("expected lower-cased format, got %q", configuration.Format)
	}
}

func TestLoadConfigurationExcludeReplacesDefaults(t *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		environment string
		expected    []string
	}{
		{name: "single_flag_value", arguments: []string{"--exclude", ".git"}, expected: []string{".git"}},
		{name: "shorter_than_defaults", arguments: []string{"--exclude", "vendor", "--exclude", "*.tmp"}, expected: []string{"vendor", "*.tmp"}},
		{name: "empty_flag_disables_defaults", arguments: []string{"--exclude="}, expected: []string{}},
		{name: "environment_list", environment: "vendor,*.log", expected: []string{"vendor", "*.log"}},
		{name: "flag_wins_over_environment", arguments: []string{"--exclude", "dist"}, environment: "vendor", expected: []string{"dist"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if testCase.environment != "" {
				t.Setenv("CTXTREE_EXCLUDE", testCase.environment)
			}
			flagSet := newTestFlagSet()
			if parseError := flagSet.Parse(append([]string{"--output", "tree.txt"}, testCase.arguments...)); parseError != nil {
				t.Fatalf("parse: %v", parseError)
			}

			configuration, loadError := LoadConfiguration(LoadOptions{FlagSet: flagSet})
			if loadError != nil {
				t.Fatalf("LoadConfiguration error: %v", loadError)
			}
			if !reflect.DeepEqual(configuration.Exclude, testCase.expected) {
				t.Fatalf("expected excludes %v, got %v", testCase.expected, configuration.Exclude)
			}
		})
	}
}

func TestLoadConfigurationEnvironmentDepth(t *testing.T) {
	t.Setenv("CTXTREE_OUTPUT", "tree.txt")
	t.Setenv("CTXTREE_MAXDEPTH", "1")

	configuration, loadError := LoadConfiguration(LoadOptions{})
	if loadError != nil {
		t.Fatalf("LoadConfiguration error: %v", loadError)
	}
	if configuration.MaxDepth != 1 {
		t.Fatalf("expected depth 1, got %d", configuration.MaxDepth)
	}
}

func TestLoadConfigurationRejectsInvalidDepth(t *testing.T) {
	flagSet := newTestFlagSet()
	if parseError := flagSet.Parse([]string{"--output", "tree.txt", "--maxDepth", "-3"}); parseError != nil {
		t.Fatalf("parse: %v", parseError)
	}

	_, loadError := LoadConfiguration(LoadOptions{FlagSet: flagSet})
	if !errors.Is(loadError, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", loadError)
	}
}
