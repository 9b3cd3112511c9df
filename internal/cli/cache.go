package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellmap/wellmap/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, where, err := c.openClearer(ctx, redisURL)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess(c.Stdout, "Cleared %d cached %s", n, plural("image", n))
			printDetail(c.Stdout, "%s", where)
			return nil
		},
	}
	cmd.Flags().StringVar(&redisURL, "redis", "", "clear the Redis cache at `URL` instead of the local one")
	return cmd
}

type clearableCache interface {
	cache.Cache
	cache.Clearer
}

func (c *CLI) openClearer(ctx context.Context, redisURL string) (clearableCache, string, error) {
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL, cache.DefaultRedisPrefix)
		if err != nil {
			return nil, "", err
		}
		return rc, "Redis keys: " + cache.DefaultRedisPrefix + ":*", nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", err
	}
	return fc, "Directory: " + dir, nil
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.Stdout, dir)
			return nil
		},
	}
}
