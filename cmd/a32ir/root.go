package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a32ir/a32ir/logging"
)

const envPrefix = "a32ir"

type rootParams struct {
	configFile string
	logLevel   string
	logFormat  string
}

// cli holds what the subcommands share.
type cli struct {
	stdOut, stdErr io.Writer
	params         rootParams
	logger         logging.Logger
}

func newRootCommand(stdOut, stdErr io.Writer) *cobra.Command {
	c := &cli{stdOut: stdOut, stdErr: stdErr, logger: logging.NewNoOpLogger()}
	root := &cobra.Command{
		Use:   "a32ir",
		Short: "A32 ASIMD to IR translator",
		Long: `Decode, translate and evaluate guest A32 instructions of the ASIMD
"three registers of the same length" class.

Words are given in hexadecimal. Every flag can also be set in the YAML file
named by --config, or in the environment as A32IR_<FLAG>, e.g.
A32IR_MAX_INSTRUCTIONS=8.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.bindConfig(cmd); err != nil {
				return err
			}
			return c.setupLogger()
		},
	}
	root.SetOut(stdOut)
	root.SetErr(stdErr)

	flags := root.PersistentFlags()
	flags.StringVar(&c.params.configFile, "config", "", "YAML file with flag values")
	flags.StringVar(&c.params.logLevel, "log-level", "info", "log level: error, warn, info or debug")
	flags.StringVar(&c.params.logFormat, "log-format", "text", "log format: text, json or json-pretty")

	root.AddCommand(
		c.newDecodeCommand(),
		c.newTranslateCommand(),
		c.newEvalCommand(),
		c.newVersionCommand(),
	)
	return root
}

// bindConfig sets every flag of cmd not given on the command line from the
// environment, then from the config file.
func (c *cli) bindConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if c.params.configFile != "" {
		v.SetConfigFile(c.params.configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	var errs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
			errs = append(errs, err.Error())
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("error mapping configuration to flags: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *cli) setupLogger() error {
	level, err := logging.GetLevel(c.params.logLevel)
	if err != nil {
		return err
	}
	logger := logging.New()
	logger.SetOutput(c.stdErr)
	logger.SetFormatter(logging.GetFormatter(c.params.logFormat, ""))
	logger.SetLevel(level)
	c.logger = logger
	return nil
}
