package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abyssdigger/pipelog"
	"github.com/abyssdigger/pipelog/colors"
	"github.com/abyssdigger/pipelog/config"
)

const cliSource = "pipelog"

// emitOptions holds the flags of the emit command.
type emitOptions struct {
	configFile string
	source     string
	level      string
}

// newRootCmd builds the command tree. Input is read from in; the default
// emit sink and strip output go to out.
func newRootCmd(router *pipelog.Router, in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pipelog",
		Short:        "Route log lines to configured sinks",
		SilenceUsage: true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.AddCommand(newEmitCmd(router), newStripCmd())
	return rootCmd
}

func newEmitCmd(router *pipelog.Router) *cobra.Command {
	opts := &emitOptions{}
	cmd := &cobra.Command{
		Use:   "emit [MESSAGE...]",
		Short: "Print a message (or every stdin line) through the router",
		Long: `Print routes one message built from the arguments, or every line read
from standard input when no arguments are given, through the router.

With --config the sinks and styles come from the YAML file (and PIPELOG_*
environment variables). Without it every message goes to standard output
with the default level styles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, router, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "router configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.source, "source", "s", cliSource, "source name stamped on the messages")
	cmd.Flags().StringVarP(&opts.level, "level", "l", pipelog.LevelInfo, "level of the messages")
	return cmd
}

func runEmit(cmd *cobra.Command, router *pipelog.Router, opts *emitOptions, args []string) error {
	if err := setupRouter(cmd, router, opts.configFile); err != nil {
		return err
	}
	level := strings.ToUpper(opts.level)
	log := router.NewHandle(opts.source)

	if len(args) > 0 {
		log.Print(level, strings.Join(args, " "))
		return nil
	}

	// no line length limit, a huge line must not stop the rest of the input
	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			log.Print(level, strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return router.NewHandle(cliSource).Fail(pipelog.CodeGeneric, "reading input: %v", err)
		}
	}
}

// setupRouter registers the configured sinks, or a single sink on the
// command output when no configuration file is given.
func setupRouter(cmd *cobra.Command, router *pipelog.Router, path string) error {
	if path == "" {
		out := cmd.OutOrStdout()
		router.ApplyDefaultStyles().
			AddWriterSink(out, colors.IsColorCapable(out), pipelog.FilterSpec{})
		return nil
	}
	if _, err := config.LoadAndApply(router, path); err != nil {
		return fmt.Errorf("failed to configure router: %w", err)
	}
	return nil
}

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip",
		Short: "Copy standard input to standard output without escape sequences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			if _, err := io.WriteString(cmd.OutOrStdout(), colors.StripEscapes(string(data))); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}
}
