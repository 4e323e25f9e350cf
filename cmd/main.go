package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coachportal",
	Short: "Student portal for coaching nutrition plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "verify <access-code>",
			Short: "Look up the student owning an access code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newCLI()
				if err != nil {
					return err
				}
				return a.verify(cmd.Context(), args[0], cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "calculations <student-id>",
			Short: "Print a student's normalized calculations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newCLI()
				if err != nil {
					return err
				}
				return a.calculations(cmd.Context(), args[0], cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "meal-plans <student-id>",
			Short: "Print a student's meal plans",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newCLI()
				if err != nil {
					return err
				}
				return a.mealPlans(cmd.Context(), args[0], cmd.OutOrStdout())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
