package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"autorepo/internal/auth"
	"autorepo/pkg/github"
)

var (
	loginWithToken bool
	loginWeb       bool
)

// Terminal access, replaced in tests
var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readPassword    = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
	browserOpener   auth.BrowserOpener = auth.NewBrowserOpener()
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the GitHub token",
	Long: `Manage the personal access token autorepo uses for the GitHub API.

The token is looked up in the GITHUB_TOKEN environment variable first, then in
the OS keyring entry written by 'autorepo auth login', then in github.token of
the config file.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a GitHub token in the OS keyring",
	Long: `Validate a personal access token against the GitHub API and store it in the
OS keyring.

On a terminal the token is read without echo. With --with-token it is read from
standard input, which suits scripts. With --web the token creation page is
opened first with the required scopes preselected.

Examples:
  autorepo auth login
  autorepo auth login --web
  echo "$TOKEN" | autorepo auth login --with-token`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored GitHub token",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the authenticated GitHub account and token scopes",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authLoginCmd.Flags().BoolVar(&loginWithToken, "with-token", false, "Read the token from standard input")
	authLoginCmd.Flags().BoolVar(&loginWeb, "web", false, "Open the token creation page in the browser")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if loginWeb {
		tokenURL, err := auth.NewTokenURL(appConfig.WebURL(), github.RequiredScopes)
		if err != nil {
			return err
		}
		fmt.Fprintf(errOut, "🌐 Opening %s\n", tokenURL)
		if err := browserOpener.Open(tokenURL); err != nil {
			fmt.Fprintf(errOut, "⚠️  Could not open the browser: %v\n", err)
		}
	}

	token, err := readToken(cmd.InOrStdin(), errOut, loginWithToken)
	if err != nil {
		return err
	}

	info, err := newAuthManager().Login(cmd.Context(), token, github.WithBaseURL(appConfig.GitHub.BaseURL))
	if err != nil {
		logger.Debugf("Login failed: %v", err)
		fmt.Fprintln(errOut, "❌ GitHub rejected the token")
		return ErrCommandFailed
	}

	fmt.Fprintf(out, "✅ Logged in to GitHub as %s\n", info.User)
	warnMissingScopes(errOut, info)

	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if err := newAuthManager().Logout(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✅ Removed the stored GitHub token")
	if os.Getenv(github.EnvToken) != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s is still set and will be used\n", github.EnvToken)
	}

	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	am := newAuthManager()

	token, err := am.GetToken(appConfig)
	if err != nil {
		logger.Debugf("Token lookup failed: %v", err)
		fmt.Fprintln(errOut, github.GetAuthInstructions())
		return ErrCommandFailed
	}

	info, err := am.ValidateToken(cmd.Context(), token, github.WithBaseURL(appConfig.GitHub.BaseURL))
	if err != nil {
		logger.Debugf("Token validation failed: %v", err)
		fmt.Fprintln(errOut, "❌ The GitHub token is invalid or expired")
		return ErrCommandFailed
	}

	fmt.Fprintf(out, "Logged in to GitHub as %s\n", info.User)
	if len(info.Scopes) == 0 {
		fmt.Fprintln(out, "Token scopes: none reported")
	} else {
		fmt.Fprintf(out, "Token scopes: %s\n", strings.Join(info.Scopes, ", "))
	}
	warnMissingScopes(errOut, info)

	return nil
}

// readToken reads a token from in, without echo when in is the terminal
func readToken(in io.Reader, prompt io.Writer, fromStdin bool) (string, error) {
	if !fromStdin && stdinIsTerminal() {
		fmt.Fprint(prompt, "Paste your GitHub token: ")
		secret, err := readPassword()
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return "", fmt.Errorf("no token provided on standard input")
	}
	return token, nil
}

func warnMissingScopes(w io.Writer, info *github.TokenInfo) {
	if missing := info.MissingScopes(); len(missing) > 0 {
		fmt.Fprintf(w, "⚠️  Token is missing scopes: %s\n", strings.Join(missing, ", "))
	}
}
