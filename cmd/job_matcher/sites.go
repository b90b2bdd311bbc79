package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/sites"
)

var sitesCommand = &cobra.Command{
	Use:   "sites",
	Short: "List the configured job sites and their scrape rules",
	RunE: func(_ *cobra.Command, _ []string) error {
		rules := sites.Registry()
		if err := sites.ValidateAll(rules); err != nil {
			return err
		}
		for _, rule := range rules {
			fmt.Printf("%s\n", rule.Source)
			fmt.Printf("  base URL:   %s\n", rule.BaseURL)
			fmt.Printf("  pagination: %s\n", rule.Pagination.Kind)
			fmt.Printf("  card:       %s\n", rule.CardSelector)
			fmt.Printf("  settle:     %s\n", rule.SettleDelay)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCommand)
}
