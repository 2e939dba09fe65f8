package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rogersnm/dolphin/internal/token"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword and stdinIsTerminal are replaced in tests.
var (
	readPassword    = term.ReadPassword
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API credential",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, _ := cmd.Flags().GetString("token")
		if tok == "" {
			var err error
			tok, err = promptToken(cmd.ErrOrStderr(), cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}
		}
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return fmt.Errorf("no token given")
		}
		if cfg.RequireJWT && !token.IsJWT(tok) {
			return fmt.Errorf("token is not a JWT (require_jwt is set)")
		}
		if err := tokens.Store(tok); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Logged in")
		if exp, ok := token.Expiry(tok); ok {
			fmt.Fprintf(out, "Token expires %s\n", exp.Local().Format(time.RFC1123))
		}
		return nil
	},
}

func promptToken(w io.Writer, in io.Reader) (string, error) {
	if stdinIsTerminal() {
		fmt.Fprint(w, "Token: ")
		b, err := readPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tokens.Invalidate(); err != nil {
			return fmt.Errorf("removing token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which token is used and when it expires",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		slot, tok, ok := tokens.Lookup()
		if !ok {
			fmt.Fprintln(out, "Not authenticated. Run: dolphin auth login")
			return nil
		}
		fmt.Fprintf(out, "Authenticated to %s\n", cfg.APIURL)
		fmt.Fprintf(out, "Token (%s): %s...\n", slot, tok[:min(8, len(tok))])
		if exp, ok := token.Expiry(tok); ok {
			if time.Now().After(exp) {
				fmt.Fprintf(out, "Expired %s\n", exp.Local().Format(time.RFC1123))
			} else {
				fmt.Fprintf(out, "Expires %s\n", exp.Local().Format(time.RFC1123))
			}
		}
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("token", "", "bearer token (prompted when omitted)")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
