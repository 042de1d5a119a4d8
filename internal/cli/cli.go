// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/lister/internal/config"
	"github.com/temirov/lister/internal/ignore"
	"github.com/temirov/lister/internal/inventory"
	"github.com/temirov/lister/internal/prompt"
	"github.com/temirov/lister/internal/services/clipboard"
	"github.com/temirov/lister/internal/session"
	"github.com/temirov/lister/internal/tokenizer"
	"github.com/temirov/lister/internal/utils"
)

const (
	configFlagName       = "config"
	exclusionFlagName    = "e"
	outputDirFlagName    = "output-dir"
	inventoryFileFlag    = "inventory-file"
	gitignoreFlagName    = "gitignore"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	copyFlagName         = "copy"
	verboseFlagName      = "verbose"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "lister version: %s\n"
	rootUse              = "lister [directory]"
	rootShortDescription = "inventory a project and dump selected source files into one text file"
	rootLongDescription  = `lister walks a project directory, optionally saves a plain-text map of it,
then asks which folder to dump and how to select files from it. The selected files are
written into a single Markdown-style report next to the project.
Use -e to exclude more entry names, --tokens to estimate report size in model tokens,
and --copy to put the report on the clipboard.`
	rootUsageExample = `  # Run interactively against the current directory
  lister

  # Exclude build output and estimate tokens
  lister -e dist -e coverage --tokens`

	treeUse              = "tree [directory]"
	treeAlias            = "t"
	treeShortDescription = "print the inventory tree without prompting (" + treeAlias + ")"
	initUse              = "init"
	initShortDescription = "write a default configuration file"

	configFlagDescription        = "configuration file to use instead of " + utils.ConfigFileName
	exclusionFlagDescription     = "exclude entries with this name (repeatable)"
	outputDirFlagDescription     = "directory receiving the reports"
	inventoryFileFlagDescription = "file name of the inventory report"
	gitignoreFlagDescription     = "also hide entries matched by the root .gitignore"
	tokensFlagDescription        = "estimate the report size in tokens"
	modelFlagDescription         = "tokenizer model used for token estimation"
	copyFlagDescription          = "copy the report to the clipboard"
	verboseFlagDescription       = "emit diagnostic logging"
	versionFlagDescription       = "display application version"
	globalFlagDescription        = "write the configuration under the home directory"
	forceFlagDescription         = "overwrite an existing configuration file"

	configurationWrittenFormat = "Configuration written to %s\n"

	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	errorDirectoryFormat        = "'%s' is not a directory"
	errorLoadConfigFormat       = "load configuration: %w"
)

// environment carries the process resources a command run uses.
type environment struct {
	input            io.Reader
	output           io.Writer
	logger           *zap.Logger
	workingDirectory string
	newCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	newCopier        func() (clipboard.Copier, bool)
}

// rootOptions stores values of the flags shared by every command.
type rootOptions struct {
	configPath    string
	exclusions    []string
	outputDir     string
	inventoryFile string
	gitignore     bool
	tokens        bool
	model         string
	copyReport    bool
	verbose       bool
}

// runSettings is the merged result of configuration files and explicit flags.
type runSettings struct {
	exclusions      utils.ExclusionSet
	outputDirectory string
	inventoryFile   string
	useGitIgnore    bool
	tokensEnabled   bool
	model           string
	copyEnabled     bool
}

// Execute runs the lister application.
func Execute(logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
	}
	rootCommand := createRootCommand(&environment{
		input:            os.Stdin,
		output:           os.Stdout,
		logger:           logger,
		workingDirectory: workingDirectory,
		newCounter:       tokenizer.NewCounter,
		newCopier:        systemCopier,
	})
	rootCommand.SetArgs(joinToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

func systemCopier() (clipboard.Copier, bool) {
	if !clipboard.Available() {
		return nil, false
	}
	return clipboard.NewService(), true
}

// createRootCommand builds the root Cobra command.
func createRootCommand(env *environment) *cobra.Command {
	var options rootOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
			if options.verbose {
				verboseLogger, loggerError := utils.NewApplicationLogger(true)
				if loggerError != nil {
					return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
				}
				env.logger = verboseLogger
			}
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			root, rootError := resolveDirectory(env.workingDirectory, arguments)
			if rootError != nil {
				return rootError
			}
			settings, settingsError := resolveSettings(command, env.workingDirectory, root, options)
			if settingsError != nil {
				return settingsError
			}
			return runSession(command, env, root, settings)
		},
	}
	rootCommand.SetOut(env.output)

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	persistentFlags.BoolVar(&options.verbose, verboseFlagName, false, verboseFlagDescription)
	persistentFlags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	persistentFlags.StringArrayVarP(&options.exclusions, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerToggleFlag(persistentFlags, &options.gitignore, gitignoreFlagName, gitignoreFlagDescription)

	rootFlags := rootCommand.Flags()
	rootFlags.StringVar(&options.outputDir, outputDirFlagName, "", outputDirFlagDescription)
	rootFlags.StringVar(&options.inventoryFile, inventoryFileFlag, "", inventoryFileFlagDescription)
	registerToggleFlag(rootFlags, &options.tokens, tokensFlagName, tokensFlagDescription)
	rootFlags.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerToggleFlag(rootFlags, &options.copyReport, copyFlagName, copyFlagDescription)

	rootCommand.AddCommand(
		createTreeCommand(env, &options),
		createInitCommand(env),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(env *environment, options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			root, rootError := resolveDirectory(env.workingDirectory, arguments)
			if rootError != nil {
				return rootError
			}
			settings, settingsError := resolveSettings(command, env.workingDirectory, root, *options)
			if settingsError != nil {
				return settingsError
			}
			projectInventory, buildError := inventory.Build(root, settings.exclusions)
			if buildError != nil {
				return buildError
			}
			_, printError := fmt.Fprintln(command.OutOrStdout(), projectInventory.Tree)
			return printError
		},
	}
}

// createInitCommand returns the init subcommand.
func createInitCommand(env *environment) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: env.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func resolveDirectory(workingDirectory string, arguments []string) (string, error) {
	if len(arguments) == 0 {
		return workingDirectory, nil
	}
	directory := arguments[0]
	if !filepath.IsAbs(directory) {
		directory = filepath.Join(workingDirectory, directory)
	}
	if !utils.IsDirectoryPath(directory) {
		return "", fmt.Errorf(errorDirectoryFormat, arguments[0])
	}
	return directory, nil
}

// resolveSettings loads configuration and lets explicitly set flags override it.
func resolveSettings(command *cobra.Command, workingDirectory string, root string, options rootOptions) (runSettings, error) {
	applicationConfig, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return runSettings{}, fmt.Errorf(errorLoadConfigFormat, loadError)
	}

	settings := runSettings{
		exclusions:      applicationConfig.ExclusionSet().With(projectExclusions(options.exclusions)...),
		outputDirectory: applicationConfig.OutputDirectory,
		inventoryFile:   applicationConfig.InventoryFile,
		useGitIgnore:    config.BoolValue(applicationConfig.GitIgnore, false),
		tokensEnabled:   config.BoolValue(applicationConfig.Tokens.Enabled, false),
		model:           applicationConfig.Tokens.Model,
		copyEnabled:     config.BoolValue(applicationConfig.Clipboard, false),
	}
	flags := command.Flags()
	if flags.Changed(outputDirFlagName) {
		settings.outputDirectory = options.outputDir
	}
	if flags.Changed(inventoryFileFlag) {
		settings.inventoryFile = options.inventoryFile
	}
	if flags.Changed(gitignoreFlagName) {
		settings.useGitIgnore = options.gitignore
	}
	if flags.Changed(tokensFlagName) {
		settings.tokensEnabled = options.tokens
	}
	if flags.Changed(modelFlagName) || settings.model == "" {
		settings.model = options.model
	}
	if flags.Changed(copyFlagName) {
		settings.copyEnabled = options.copyReport
	}
	if settings.outputDirectory != "" && !filepath.IsAbs(settings.outputDirectory) {
		settings.outputDirectory = filepath.Join(workingDirectory, settings.outputDirectory)
	}
	if settings.useGitIgnore {
		extendedExclusions, ignoreError := ignore.Apply(root, settings.exclusions)
		if ignoreError != nil {
			return runSettings{}, ignoreError
		}
		settings.exclusions = extendedExclusions
	}
	return settings, nil
}

// projectExclusions adds the local configuration file, which is tool metadata rather than
// project content, ahead of the names passed with -e.
func projectExclusions(flagExclusions []string) []string {
	return append([]string{utils.ConfigFileName}, flagExclusions...)
}

func runSession(command *cobra.Command, env *environment, root string, settings runSettings) error {
	logger := env.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionOptions := session.Options{
		Root:            root,
		OutputDirectory: settings.outputDirectory,
		InventoryFile:   settings.inventoryFile,
		Exclusions:      settings.exclusions,
		Prompter:        prompt.NewConsolePrompter(env.input, command.OutOrStdout()),
		Output:          command.OutOrStdout(),
		Logger:          logger,
	}
	if settings.tokensEnabled {
		counter, modelName, counterError := env.newCounter(tokenizer.Config{Model: settings.model})
		if counterError != nil {
			logger.Warn("token estimation disabled", zap.Error(counterError))
		} else {
			sessionOptions.TokenCounter = counter
			sessionOptions.TokenModel = modelName
		}
	}
	if settings.copyEnabled {
		if copier, available := env.newCopier(); available {
			sessionOptions.Copier = copier
		} else {
			logger.Warn("clipboard unavailable on this platform")
		}
	}
	return session.Run(sessionOptions)
}
