// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vrmview renders VRM avatars headlessly and inspects their rigs.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cogentcore.org/vrmview/base/logx"
)

type rootFlags struct {
	config             string
	verbose, vv, quiet bool
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "vrmview",
		Short:         "View VRM humanoid avatars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(rf.vv, rf.verbose, rf.quiet)
			logx.SetDefaultLogger()
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&rf.config, "config", "", "config file (.toml or .yaml)")
	pf.BoolVarP(&rf.verbose, "verbose", "v", false, "show informational messages")
	pf.BoolVar(&rf.vv, "vv", false, "show debug messages")
	pf.BoolVarP(&rf.quiet, "quiet", "q", false, "only show errors")

	cmd.AddCommand(newViewCmd(rf), newInspectCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logx.SetDefaultLogger()
		slog.Error(err.Error())
		os.Exit(1)
	}
}
