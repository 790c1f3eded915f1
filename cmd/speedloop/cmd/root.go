package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/speedloop/internal/hostinfo"
	"github.com/psantana5/speedloop/internal/logging"
	"github.com/psantana5/speedloop/internal/loop"
	"github.com/psantana5/speedloop/internal/report"
)

// runner is the part of loop.Runner the command needs
type runner interface {
	Run() (*loop.Measurement, error)
}

// newRunner is swapped in tests to avoid a billion iterations
var newRunner = func(logger *logging.Logger) runner {
	return loop.NewRunner(nil, logger)
}

// Execute builds the command tree and runs it
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the speedloop command with its own config state
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "speedloop",
		Short: "Time an empty loop of one billion iterations",
		Long: `speedloop runs an empty counted loop exactly 1000000000 times and prints
how long it took, as a point of comparison with the same loop written in
other languages. With no flags it prints a single line:

  Go looped 1000000000 times in 0.312 seconds`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(cmd, v)
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.speedloop/config.yaml)")
	pf.StringP("output", "o", string(report.FormatText), "output format: text, json, yaml, table or prometheus")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	rootCmd.Flags().String("label", report.DefaultLabel, "name printed before \"looped\"")
	rootCmd.Flags().Bool("host", false, "attach host and process CPU time to structured output")

	v.BindPFlag("output", pf.Lookup("output"))
	v.BindPFlag("log_level", pf.Lookup("log-level"))
	v.BindPFlag("log_format", pf.Lookup("log-format"))
	v.BindPFlag("label", rootCmd.Flags().Lookup("label"))
	v.BindPFlag("host", rootCmd.Flags().Lookup("host"))

	rootCmd.AddCommand(newHostCmd(v))

	return rootCmd
}

// initConfig reads in config file and ENV variables if set
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("SPEEDLOOP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// No home, no default config
		return nil
	}
	v.AddConfigPath(filepath.Join(home, ".speedloop"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func newLogger(v *viper.Viper) *logging.Logger {
	level := logging.ParseLevel(v.GetString("log_level"))
	return logging.NewLogger(level, strings.EqualFold(v.GetString("log_format"), "json"))
}

func runLoop(cmd *cobra.Command, v *viper.Viper) error {
	// Validate before spending seconds in the loop
	format, err := report.ParseFormat(v.GetString("output"))
	if err != nil {
		return err
	}

	logger := newLogger(v)

	withHost := v.GetBool("host")
	if withHost && format == report.FormatText {
		logger.Warn("--host is ignored for text output")
		withHost = false
	}

	var cpuBefore hostinfo.CPUTime
	sampleCPU := withHost
	if sampleCPU {
		if cpuBefore, err = hostinfo.ProcessCPU(); err != nil {
			logger.Warn("cpu time unavailable", map[string]interface{}{"error": err.Error()})
			sampleCPU = false
		}
	}

	m, err := newRunner(logger).Run()
	if err != nil {
		return fmt.Errorf("loop run failed: %w", err)
	}

	result := report.NewResult(v.GetString("label"), m)

	if sampleCPU {
		cpuAfter, err := hostinfo.ProcessCPU()
		if err != nil {
			logger.Warn("cpu time unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			result.SetCPU(cpuAfter.Sub(cpuBefore))
		}
	}
	if withHost {
		result.SetHost(hostinfo.Detect())
	}

	result.LogSummary(logger)

	return report.Write(cmd.OutOrStdout(), format, result)
}
