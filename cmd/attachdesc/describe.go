package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func describeCmd() *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:   "describe <path>",
		Short: "Print the description of a file or archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runDescribe(ctx, cmd, args[0], question)
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "question the description should help answer")
	return cmd
}

func runDescribe(ctx context.Context, cmd *cobra.Command, path, question string) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	describer, err := newDescriber(cfg, log)
	if err != nil {
		return err
	}

	description, err := describer.DescribeAttachment(ctx, path, question)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), description)
	return nil
}
