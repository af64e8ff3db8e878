package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"analysis/toolutil/internal/store"
	"analysis/toolutil/internal/tmpdir"
	jwtpkg "analysis/toolutil/pkg/jwt"
)

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push <list> <value>",
		Short: "Prepend a value to a list in the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Store
			err := store.With(cmd.Context(), sc.Host, sc.Port, sc.Password, func(c *store.Conn) error {
				return c.Push(cmd.Context(), args[0], args[1])
			})
			if err != nil {
				a.logger.Error("push failed", zap.String("list", args[0]), zap.Error(err))
				return err
			}
			a.logger.Debug("pushed", zap.String("list", args[0]), zap.String("host", sc.Host), zap.String("port", sc.Port))
			return nil
		},
	}
}

func newPopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pop <set>",
		Short: "Remove and print a random member of a set",
		Long:  "Remove and print a random member of a set. Nothing is printed when the set is empty or missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Store
			return store.With(cmd.Context(), sc.Host, sc.Port, sc.Password, func(c *store.Conn) error {
				member, found, err := c.PopRandom(cmd.Context(), args[0])
				if err != nil {
					a.logger.Error("pop failed", zap.String("set", args[0]), zap.Error(err))
					return err
				}
				if !found {
					a.logger.Debug("set empty", zap.String("set", args[0]))
					return nil
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), member)
				return err
			})
		},
	}
}

func newTmpdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tmpdir",
		Short: "Print the platform temporary directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tmpdir.New().Get())
			return err
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Auth.SigningKey == "" {
				return fmt.Errorf("auth.signing_key is not configured")
			}
			m := jwtpkg.NewManager(a.cfg.Auth.SigningKey, a.cfg.Auth.Issuer, a.cfg.Auth.TokenTTL)
			tok, err := m.Generate(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "client identity to embed in the token")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
