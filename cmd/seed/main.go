package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/app/seed"
)

var (
	baseURL  string
	username string
	password string
	register bool
	delay    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the sample posts through a running API",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:3000", "API base URL")
	rootCmd.Flags().StringVar(&username, "username", "dev-admin", "account used to author the posts")
	rootCmd.Flags().StringVar(&password, "password", "DevAdmin123", "password for --username")
	rootCmd.Flags().BoolVar(&register, "register", false, "register the account before logging in")
	rootCmd.Flags().DurationVar(&delay, "delay", time.Second, "pause between post creations")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	summary, err := seed.Run(cmd.Context(), seed.NewClient(baseURL), seed.Options{
		Username: username,
		Password: password,
		Register: register,
		Delay:    delay,
	}, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %d posts\n", summary.Created)
	for _, tag := range summary.SortedTags() {
		fmt.Fprintf(out, "  %-12s %d\n", tag, summary.TagCounts[tag])
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
