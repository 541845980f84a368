package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playground/internal/driver"
)

// cacheApp - подкаталог в $XDG_CACHE_HOME для ответов --cache.
const cacheApp = "terbium-playground"

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the response cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenResponseCache(cacheApp)
		if err != nil {
			return fmt.Errorf("failed to open response cache: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return err
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached response",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenResponseCache(cacheApp)
		if err != nil {
			return fmt.Errorf("failed to open response cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear %s: %w", cache.Dir(), err)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd, cacheClearCmd)
}
