package cmd

import (
	"io"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"autorepo/pkg/config"
	"autorepo/pkg/fuzzy"
	"autorepo/pkg/git"
	"autorepo/pkg/github"
	"autorepo/pkg/repo"
)

// newOperations builds the repository operations for one invocation.
// Tests replace it with a fake.
var newOperations = defaultOperations

// newAuthManager builds the token resolver. Tests replace it to avoid the
// OS keyring.
var newAuthManager = func() *github.AuthManager {
	return github.NewAuthManager(github.NewKeyringStore())
}

func defaultOperations(cfg *config.Config, out, errOut io.Writer) (repo.Operations, error) {
	am := newAuthManager()

	var token string
	if cfg.Backend() == git.BackendGoGit {
		// go-git authenticates https clones itself
		if t, err := am.GetToken(cfg); err == nil {
			token = t
		} else {
			logger.Debugf("Cloning without credentials: %v", err)
		}
	}

	runner, err := git.NewRunner(git.Options{
		Backend: cfg.Backend(),
		Binary:  cfg.GitBinary(),
		Token:   token,
		Stdout:  out,
		Stderr:  errOut,
	})
	if err != nil {
		return nil, err
	}

	opts := []repo.Option{
		repo.WithRunner(runner),
		repo.WithDefaultUser(cfg.GitHub.User),
		repo.WithWebURL(cfg.WebURL()),
		repo.WithProtocol(cfg.Protocol()),
	}

	if path, err := git.GlobalConfigPath(); err == nil {
		opts = append(opts, repo.WithGitConfig(path))
	}

	if fuzzy.IsInteractive() {
		opts = append(opts, repo.WithPicker(fuzzy.NewRepoPicker()))
	}

	factory := func() (github.APIClient, error) {
		return am.NewAuthenticatedClient(cfg)
	}

	return repo.NewService(factory, opts...), nil
}

// newHandler wires a Handler to the command's output streams
func newHandler(cmd *cobra.Command) (*Handler, error) {
	ops, err := newOperations(appConfig, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return NewHandler(ops, cmd.OutOrStdout(), cmd.ErrOrStderr()), nil
}
