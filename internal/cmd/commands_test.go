package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autorepo/pkg/repo"
)

func TestCloneCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want repo.CloneTarget
	}{
		{
			name: "url",
			args: []string{"clone", "--url", "https://github.com/octocat/hello-world.git"},
			want: repo.CloneTarget{URL: "https://github.com/octocat/hello-world.git"},
		},
		{
			name: "user and repo",
			args: []string{"clone", "--user", "octocat", "--repo", "hello-world"},
			want: repo.CloneTarget{User: "octocat", Repo: "hello-world"},
		},
		{
			name: "short flags",
			args: []string{"clone", "-u", "octocat", "-r", "hello-world"},
			want: repo.CloneTarget{User: "octocat", Repo: "hello-world"},
		},
		{
			name: "no flags",
			args: []string{"clone"},
			want: repo.CloneTarget{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := newFakeOperations()
			useFakeOperations(t, ops)
			path := writeConfig(t, "")

			out, _, err := executeCommand(t, "", append([]string{"--config", path}, tt.args...)...)

			require.NoError(t, err)
			assert.Equal(t, msgCloned+"\n", out)
			assert.Equal(t, []repo.CloneTarget{tt.want}, ops.cloneTargets)
		})
	}
}

func TestCloneCommand_RejectsArguments(t *testing.T) {
	ops := newFakeOperations()
	useFakeOperations(t, ops)

	_, _, err := executeCommand(t, "", "clone", "hello-world")

	assert.Error(t, err)
	assert.Empty(t, ops.calls)
}

func TestCreateCommand(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		args      []string
		want      repo.CreateOptions
		wantCalls []string
	}{
		{
			name:      "built-in defaults",
			args:      []string{"create", "myrepo"},
			want:      repo.CreateOptions{Name: "myrepo", License: "mit", Gitignore: "Python"},
			wantCalls: []string{"create", "clone"},
		},
		{
			name:      "config defaults",
			config:    "defaults:\n  license: apache-2.0\n  gitignore: Go\n",
			args:      []string{"create", "myrepo"},
			want:      repo.CreateOptions{Name: "myrepo", License: "apache-2.0", Gitignore: "Go"},
			wantCalls: []string{"create", "clone"},
		},
		{
			name:      "flags win over config",
			config:    "defaults:\n  license: apache-2.0\n  gitignore: Go\n",
			args:      []string{"create", "myrepo", "--license", "gpl-3.0", "-g", "Node"},
			want:      repo.CreateOptions{Name: "myrepo", License: "gpl-3.0", Gitignore: "Node"},
			wantCalls: []string{"create", "clone"},
		},
		{
			name: "all short flags",
			args: []string{"create", "myrepo", "-n", "-o", "myorg", "-p", "-d", "demo", "-l", "bsd-3-clause", "-g", "Rust"},
			want: repo.CreateOptions{
				Name:         "myrepo",
				Description:  "demo",
				License:      "bsd-3-clause",
				Gitignore:    "Rust",
				Organization: "myorg",
				Private:      true,
			},
			wantCalls: []string{"create"},
		},
		{
			name:      "existing",
			args:      []string{"create", "myrepo", "--existing"},
			want:      repo.CreateOptions{Name: "myrepo", License: "mit", Gitignore: "Python"},
			wantCalls: []string{"create", "init", "add-remote"},
		},
		{
			name:      "no clone wins over existing",
			args:      []string{"create", "myrepo", "--existing", "--no-clone"},
			want:      repo.CreateOptions{Name: "myrepo", License: "mit", Gitignore: "Python"},
			wantCalls: []string{"create"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := newFakeOperations()
			useFakeOperations(t, ops)
			path := writeConfig(t, tt.config)

			_, _, err := executeCommand(t, "", append([]string{"--config", path}, tt.args...)...)

			require.NoError(t, err)
			assert.Equal(t, []repo.CreateOptions{tt.want}, ops.created)
			assert.Equal(t, tt.wantCalls, ops.calls)
		})
	}
}

func TestCreateCommand_SSHProtocol(t *testing.T) {
	ops := newFakeOperations()
	useFakeOperations(t, ops)
	path := writeConfig(t, "git:\n  protocol: ssh\n")

	_, _, err := executeCommand(t, "", "--config", path, "create", "myrepo", "--existing")

	require.NoError(t, err)
	assert.Equal(t, []string{"git@github.com:octocat/myrepo.git"}, ops.remotes)
}

func TestCreateCommand_RequiresName(t *testing.T) {
	ops := newFakeOperations()
	useFakeOperations(t, ops)

	_, _, err := executeCommand(t, "", "create")

	assert.Error(t, err)
	assert.Empty(t, ops.calls)
}

func TestCreateCommand_Failure(t *testing.T) {
	ops := newFakeOperations()
	ops.createOK = false
	useFakeOperations(t, ops)
	path := writeConfig(t, "")

	out, errOut, err := executeCommand(t, "", "--config", path, "create", "myrepo")

	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Empty(t, out)
	assert.Contains(t, errOut, msgCreateFailed)
}

func TestDeleteCommand(t *testing.T) {
	ops := newFakeOperations()
	useFakeOperations(t, ops)
	path := writeConfig(t, "")

	out, _, err := executeCommand(t, "", "--config", path, "delete", "myrepo", "-o", "myorg")

	require.NoError(t, err)
	assert.Equal(t, msgDeleted+"\n", out)
	assert.Equal(t, []string{"delete myrepo myorg"}, ops.calls)
}

func TestDeleteCommand_RequiresName(t *testing.T) {
	ops := newFakeOperations()
	useFakeOperations(t, ops)

	_, _, err := executeCommand(t, "", "delete")

	assert.Error(t, err)
	assert.Empty(t, ops.calls)
}

func TestUpdateCommand(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   string
	}{
		{
			name: "default visibility",
			args: []string{"update", "myrepo"},
			want: "update myrepo private",
		},
		{
			name:   "configured visibility",
			config: "defaults:\n  visibility: internal\n",
			args:   []string{"update", "myrepo"},
			want:   "update myrepo internal",
		},
		{
			name:   "flag wins",
			config: "defaults:\n  visibility: internal\n",
			args:   []string{"update", "myrepo", "--visibility", "public"},
			want:   "update myrepo public",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := newFakeOperations()
			useFakeOperations(t, ops)
			path := writeConfig(t, tt.config)

			out, _, err := executeCommand(t, "", append([]string{"--config", path}, tt.args...)...)

			require.NoError(t, err)
			assert.Equal(t, msgUpdated+"\n", out)
			assert.Equal(t, []string{tt.want}, ops.calls)
		})
	}
}

func TestUpdateCommand_Failure(t *testing.T) {
	ops := newFakeOperations()
	ops.updateOK = false
	useFakeOperations(t, ops)
	path := writeConfig(t, "")

	_, errOut, err := executeCommand(t, "", "--config", path, "update", "myrepo", "--visibility", "public")

	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, errOut, msgUpdateFailed)
}
