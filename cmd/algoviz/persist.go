package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/persist"
)

const clientTimeout = 10 * time.Second

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := persist.OpenStore(cfg.Server.Store, cfg.Server.Data)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("persistence server starting", "addr", cfg.Server.Addr, "store", cfg.Server.Store, "path", cfg.Server.Data)
	return persist.NewServer(st, logger).ListenAndServe(ctx, cfg.Server.Addr)
}

func saveArray(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	values, err := parseValues(args)
	if err != nil {
		return err
	}

	arrays, closeStore, err := openArrayStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	defer cancel()

	msg, err := arrays.Save(ctx, cfg.Username, values)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", msg, persist.Username(cfg.Username))
	return nil
}

func loadArray(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	arrays, closeStore, err := openArrayStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	defer cancel()

	values, err := arrays.Load(ctx, cfg.Username)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no saved array for %s\n", persist.Username(cfg.Username))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), values)
	return nil
}

func listUsers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	defer cancel()

	var users []string
	if cfg.Server.URL != "" {
		users, err = persist.NewClient(cfg.Server.URL).Users(ctx)
	} else {
		var st persist.Store
		st, err = persist.OpenStore(cfg.Server.Store, cfg.Server.Data)
		if err != nil {
			return err
		}
		defer st.Close()
		users, err = st.Users(ctx)
	}
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Fprintln(cmd.OutOrStdout(), u)
	}
	return nil
}
