package main

import (
	"context"
	"fmt"

	"gin-shopcart/dto"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	authUsername string
	authEmail    string
	authPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		c := newClient()
		res, err := c.Register(ctx, dto.RegisterInput{
			Username: authUsername,
			Email:    authEmail,
			Password: authPassword,
		})
		if err != nil {
			return err
		}
		if err := persistSession(res.Username, res.Token); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", res.Username)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		res, err := newClient().Login(ctx, authUsername, authPassword)
		if err != nil {
			return err
		}
		if err := persistSession(res.Username, res.Token); err != nil {
			return err
		}
		logger.Debug("Stored session", zap.String("username", res.Username))
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", res.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		if cfg.Token == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		if err := newClient().Logout(ctx); err != nil {
			// サーバー側で失効済みでもローカルのトークンは消す
			logger.Warn("Logout request failed", zap.Error(err))
		}
		if err := persistSession("", ""); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		res, err := newClient().Reload(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", res.Username, cfg.Server)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&authUsername, "username", "u", "", "Username")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "Password")
		_ = c.MarkFlagRequired("username")
		_ = c.MarkFlagRequired("password")
	}
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Email address")
	_ = registerCmd.MarkFlagRequired("email")
}
