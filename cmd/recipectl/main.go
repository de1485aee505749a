package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recipectl",
	Short: "Operator CLI for the recipe collection service",
}

func main() {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the embedded recipe catalog",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			difficulty, _ := cmd.Flags().GetString("difficulty")
			return runList(cmd.OutOrStdout(), category, difficulty)
		},
	}
	listCmd.Flags().StringP("category", "c", "", "Only recipes in this category")
	listCmd.Flags().StringP("difficulty", "d", "", "Only recipes of this difficulty (Easy, Medium, Hard)")
	catalogCmd.AddCommand(listCmd)

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print one recipe as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), args[0])
		},
	})
	rootCmd.AddCommand(catalogCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "difficulties",
		Short: "Print the difficulty color legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDifficulties(cmd.OutOrStdout())
		},
	})

	tokenCmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a local development session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _ := cmd.Flags().GetString("session")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			secret, err := identitySecret()
			if err != nil {
				return err
			}
			return runToken(cmd.OutOrStdout(), secret, args[0], session, ttl)
		},
	}
	tokenCmd.Flags().StringP("session", "s", "", "Session id (random when empty)")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
