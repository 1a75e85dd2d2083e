package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/phoenyx/internal/config"
	"github.com/jask/phoenyx/internal/service"
	"github.com/jask/phoenyx/internal/terminal"
	"github.com/jask/phoenyx/internal/tui"
)

func newRootCmd(rt *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "phoenyx",
		Short: "Echoes: Phoenyx in the terminal",
		Long: `Phoenyx renders the Echoes: Phoenyx landing page, the gateway login
terminal and the Neural Nexus chat in your terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rt.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runTUI(cmd, tui.StartLanding)
		},
	}
	root.AddCommand(
		newLoginCmd(rt),
		newAskCmd(rt),
		newConfigCmd(),
		newKeyCmd(rt),
	)
	return root
}

func (rt *cli) runTUI(cmd *cobra.Command, start tui.StartView) error {
	err := tui.Run(cmd.Context(), tui.Deps{
		Config:   rt.cfg,
		Nexus:    rt.nexus(),
		Verifier: rt.verifier(),
		Logger:   rt.log,
	}, start)
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newLoginCmd(rt *cli) *cobra.Command {
	var script bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open the gateway login terminal",
		Long: `Open the gateway login terminal directly.

With --script, answers are read from stdin, one per line, and the transcript
is printed without a TUI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if script {
				return rt.replay(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return rt.runTUI(cmd, tui.StartLogin)
		},
	}
	cmd.Flags().BoolVar(&script, "script", false, "read answers from stdin and print the transcript")
	return cmd
}

func (rt *cli) replay(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	var answers []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		answers = append(answers, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	timings := terminal.DefaultTimings().Scale(rt.cfg.Terminal.SpeedFactor())
	res, err := terminal.Replay(cmd.Context(), answers, terminal.Options{
		Verifier:  rt.verifier(),
		Timings:   &timings,
		MaskGlyph: rt.cfg.Terminal.Glyph(),
		Logger:    rt.log,
		OnLine: func(l terminal.Line) {
			fmt.Fprintln(out, formatLine(l))
		},
	})
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	rt.log.Info("replay finished",
		zap.String("step", string(res.Step)),
		zap.String("outcome", string(res.Outcome)),
		zap.Bool("exited", res.Exited),
		zap.Int("unused", len(res.Unused)))

	outcome := string(res.Outcome)
	if outcome == "" {
		outcome = "-"
	}
	fmt.Fprintf(out, "-- step=%s outcome=%s exited=%t elapsed=%s\n", res.Step, outcome, res.Exited, res.Elapsed)
	return nil
}

func formatLine(l terminal.Line) string {
	if l.Sender == terminal.SenderUser {
		return "< " + l.Text
	}
	return "> " + l.Text
}

func newAskCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one query to the Neural Nexus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				return errors.New("empty message")
			}
			history := service.NewConversation().History()
			reply := rt.nexus().Ask(cmd.Context(), message, history)
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// init must work even when the current file does not parse.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			if err := config.Save(config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func newKeyCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage provider API keys in the local secret store",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <provider> <key>",
			Short: "Store an API key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := rt.newStore()
				if err != nil {
					return err
				}
				if err := store.Set(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored key for %s\n", strings.ToLower(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <provider>",
			Short: "Remove a stored API key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := rt.newStore()
				if err != nil {
					return err
				}
				if err := store.Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted key for %s\n", strings.ToLower(args[0]))
				return nil
			},
		},
	)
	return cmd
}
