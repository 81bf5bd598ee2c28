// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ctxtree/internal/config"
	"github.com/temirov/ctxtree/internal/services/generator"
	"github.com/temirov/ctxtree/internal/utils"
)

const (
	rootDirFlagName          = "rootDir"
	rootDirFlagShorthand     = "r"
	outputFlagName           = "output"
	outputFlagShorthand      = "o"
	excludeFlagName          = "exclude"
	excludeFlagShorthand     = "e"
	includeContentFlagName   = "includeContent"
	includeContentShorthand  = "c"
	maxDepthFlagName         = config.MaxDepthKey
	maxDepthFlagShorthand    = "d"
	showHiddenFlagName       = "showHidden"
	showHiddenFlagShorthand  = "h"
	contentSizeLimitFlagName = "contentSizeLimit"
	contentSizeLimitShort    = "s"
	formatFlagName           = "format"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	copyFlagName             = "copy"
	versionFlagName          = "version"
	helpFlagName             = "help"

	versionTemplate      = "ctxtree version: %s\n"
	rootUse              = "ctxtree [rootDir]"
	rootShortDescription = "render a project's directory structure as text"
	rootLongDescription  = `ctxtree walks a directory and writes a compact text rendering of its structure,
optionally embedding the content of small files, for sharing with an LLM or a teammate.
Every flag may also be set through a CTXTREE_<FLAG> environment variable, for example CTXTREE_SHOWHIDDEN=true.`
	rootUsageExample = `  # Write the tree of the current directory
  ctxtree -o tree.txt

  # Embed files up to 20KB, two levels deep, skipping logs
  ctxtree -r ./src -o context.txt -c -d 2 -s 20 -e "node_modules,*.log"

  # Print JSON to stdout and copy it to the clipboard
  ctxtree -o - --format json --copy`

	rootDirFlagDescription          = "source directory to render"
	outputFlagDescription           = "destination file for the rendered text (- for stdout)"
	excludeFlagDescription          = "comma-separated names or *-patterns to exclude"
	includeContentFlagDescription   = "embed the content of files within the size limit"
	maxDepthFlagDescription         = "maximum depth to descend into (non-negative integer or unlimited)"
	showHiddenFlagDescription       = "include entries whose names start with a dot"
	contentSizeLimitFlagDescription = "largest file size in KB whose content is embedded"
	formatFlagDescription           = "output format (raw or json)"
	tokensFlagDescription           = "log a token estimate of the rendered output"
	modelFlagDescription            = "tokenizer model to use for token counting"
	copyFlagDescription             = "also copy the rendered output to the clipboard"
	versionFlagDescription          = "display application version"
	helpFlagDescription             = "help for ctxtree"
)

// Execute runs the ctxtree application with the process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	rootCommand.SetArgs(attachSwitchValues(rootCommand.Flags(), os.Args[1:]))
	return rootCommand.Execute()
}

// generationFlags holds the flag targets; viper reads the values back from the flag set.
type generationFlags struct {
	rootDirectory    string
	outputPath       string
	exclude          []string
	includeContent   bool
	maxDepth         int
	showHidden       bool
	contentSizeLimit int64
	format           string
	tokens           bool
	model            string
	copyOutput       bool
	showVersion      bool
	showHelp         bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	var flags generationFlags

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			if len(arguments) == 1 && !command.Flags().Changed(rootDirFlagName) {
				if setError := command.Flags().Set(rootDirFlagName, arguments[0]); setError != nil {
					return setError
				}
			}
			configuration, loadError := config.LoadConfiguration(config.LoadOptions{FlagSet: command.Flags()})
			if loadError != nil {
				return loadError
			}
			_, generateError := generator.Generate(configuration, generator.Dependencies{
				Logger: logger,
				Stdout: command.OutOrStdout(),
			})
			return generateError
		},
	}

	addGenerationFlags(rootCommand, &flags)
	return rootCommand
}

// addGenerationFlags registers every generation flag on the command. The help
// flag is registered without a shorthand because -h selects hidden entries.
func addGenerationFlags(command *cobra.Command, flags *generationFlags) {
	defaults := config.DefaultConfiguration()
	flagSet := command.Flags()
	flagSet.StringVarP(&flags.rootDirectory, rootDirFlagName, rootDirFlagShorthand, defaults.RootDir, rootDirFlagDescription)
	flagSet.StringVarP(&flags.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flagSet.StringSliceVarP(&flags.exclude, excludeFlagName, excludeFlagShorthand, defaults.Exclude, excludeFlagDescription)
	addSwitchFlag(flagSet, &flags.includeContent, includeContentFlagName, includeContentShorthand, defaults.IncludeContent, includeContentFlagDescription)
	addDepthFlag(flagSet, &flags.maxDepth, maxDepthFlagName, maxDepthFlagShorthand, defaults.MaxDepth, maxDepthFlagDescription)
	addSwitchFlag(flagSet, &flags.showHidden, showHiddenFlagName, showHiddenFlagShorthand, defaults.ShowHidden, showHiddenFlagDescription)
	flagSet.Int64VarP(&flags.contentSizeLimit, contentSizeLimitFlagName, contentSizeLimitShort, defaults.ContentSizeLimit, contentSizeLimitFlagDescription)
	flagSet.StringVar(&flags.format, formatFlagName, defaults.Format, formatFlagDescription)
	addSwitchFlag(flagSet, &flags.tokens, tokensFlagName, "", false, tokensFlagDescription)
	flagSet.StringVar(&flags.model, modelFlagName, defaults.TokenModel, modelFlagDescription)
	addSwitchFlag(flagSet, &flags.copyOutput, copyFlagName, "", false, copyFlagDescription)
	flagSet.BoolVar(&flags.showVersion, versionFlagName, false, versionFlagDescription)
	flagSet.BoolVar(&flags.showHelp, helpFlagName, false, helpFlagDescription)
}
