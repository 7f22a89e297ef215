package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockdrop/internal/api"
	"github.com/mcoot/blockdrop/internal/api/response"
	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/server"
)

var (
	buildOnce   sync.Once
	binaryPath  string
	buildOutput []byte
	buildErr    error
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	buildOnce.Do(func() {
		binaryPath = filepath.Join(projectRoot, "bin", "blockdrop-test")
		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/blockdrop")
		cmd.Dir = projectRoot
		buildOutput, buildErr = cmd.CombinedOutput()
	})
	require.NoError(t, buildErr, "failed to build CLI: %s", string(buildOutput))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) command(args ...string) *exec.Cmd {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "BLOCKDROP_TOKEN=")
	return cmd
}

func (r *cliRunner) run(args ...string) (string, error) {
	output, err := r.command(args...).CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithStdin(stdin string, args ...string) (string, error) {
	cmd := r.command(args...)
	cmd.Stdin = strings.NewReader(stdin)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func runJSON[T any](t *testing.T, r *cliRunner, args ...string) T {
	t.Helper()

	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)

	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the real server on a free loopback port
func startTestServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	app, err := factory.New(ctx, factory.Config{Logger: logger})
	require.NoError(t, err)

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 5 * time.Second
	srv := api.NewServer(server.NewHandler(app, logger, ""), cfg, logger)

	go func() {
		if err := srv.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	require.Eventually(t, func() bool {
		return !strings.HasSuffix(srv.Addr(), ":0")
	}, 5*time.Second, 10*time.Millisecond, "server did not start listening")

	t.Cleanup(func() {
		cancel()
		_ = srv.Shutdown(context.Background())
		_ = app.Close()
	})

	return "http://" + srv.Addr()
}

func TestCLI_HealthCheck(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	type healthResponse struct {
		Status string `json:"status"`
	}
	resp := runJSON[healthResponse](t, cli, "health")
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	authResp := runJSON[response.AuthResponse](t, cli, "player", "guest", "--name", "Alice")
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Token was saved to the token file
	me := runJSON[response.Player](t, cli, "player", "me")
	assert.Equal(t, authResp.Player.ID, me.ID)

	output, err := cli.run("player", "logout")
	require.NoError(t, err, "output: %s", output)

	_, err = cli.run("player", "me")
	assert.Error(t, err)
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	registered := runJSON[response.AuthResponse](t, cli,
		"player", "register", "--user", "carol", "--pass", "password123", "--name", "Carol")
	assert.False(t, registered.Player.IsGuest)

	other := &cliRunner{
		binaryPath: cli.binaryPath,
		serverURL:  cli.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}
	loggedIn := runJSON[response.AuthResponse](t, other,
		"player", "login", "--user", "carol", "--pass", "password123")
	assert.Equal(t, registered.Player.ID, loggedIn.Player.ID)
	assert.NotEqual(t, registered.SessionToken, loggedIn.SessionToken)

	output, err := other.run("player", "login", "--user", "carol", "--pass", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_CREDENTIALS")
}

func TestCLI_AdviseEmptyBoard(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))
	runJSON[response.AuthResponse](t, cli, "player", "guest", "--name", "Alice")

	advice := runJSON[response.AdviseResponse](t, cli,
		"advise", "--piece", "O", "--rows", "8", "--cols", "4")
	assert.True(t, advice.Found)
	assert.Equal(t, 0, advice.Column)
	assert.Equal(t, 0, advice.Rotations)
	assert.Equal(t, 6, advice.RestingRow)
	assert.Equal(t, 2*17+2*25, advice.Cost)
}

func TestCLI_AdviseBoardFromStdin(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))
	runJSON[response.AuthResponse](t, cli, "player", "guest", "--name", "Alice")

	board := "....\n....\n....\n....\n....\n....\n#...\n##..\n"
	output, err := cli.runWithStdin(board, "advise", "--piece", "O", "--board", "-", "--explain")
	require.NoError(t, err, "output: %s", output)

	var advice response.AdviseResponse
	require.NoError(t, json.Unmarshal([]byte(output), &advice))
	assert.True(t, advice.Found)
	assert.Equal(t, 2, advice.Column)
	assert.Equal(t, 17, advice.Cost)
	assert.NotEmpty(t, advice.Candidates)
}

func TestCLI_GameFlow(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))
	runJSON[response.AuthResponse](t, cli, "player", "guest", "--name", "Alice")

	g := runJSON[response.Game](t, cli, "game", "create", "--rows", "20", "--cols", "10")
	assert.Equal(t, "playing", g.State)
	assert.Equal(t, 20, g.Board.Rows)
	assert.Equal(t, 10, g.Board.Cols)

	placed := runJSON[response.PlaceResponse](t, cli, "game", "place", g.ID, "4")
	assert.True(t, placed.Placement.Found)
	assert.Equal(t, 4, placed.Placement.Column)
	assert.Equal(t, 1, placed.Game.PiecesPlaced)

	played := runJSON[response.AutoplayResponse](t, cli, "game", "autoplay", g.ID, "-n", "5")
	assert.NotEmpty(t, played.Actions)
	assert.Equal(t, 6, played.Game.PiecesPlaced)

	list := runJSON[response.GameList](t, cli, "game", "list")
	require.Len(t, list.Games, 1)
	assert.Equal(t, g.ID, list.Games[0].ID)

	reset := runJSON[response.Game](t, cli, "game", "reset", g.ID)
	assert.Equal(t, 0, reset.PiecesPlaced)
	assert.Equal(t, 0, reset.Score)

	output, err := cli.run("game", "abandon", g.ID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "autoplay", g.ID)
	assert.Error(t, err)
	assert.Contains(t, output, "GAME_ABANDONED")
}

func TestCLI_OtherPlayerCannotDriveGame(t *testing.T) {
	serverURL := startTestServer(t)
	owner := newCLIRunner(t, serverURL)
	other := newCLIRunner(t, serverURL)

	runJSON[response.AuthResponse](t, owner, "player", "guest", "--name", "Alice")
	runJSON[response.AuthResponse](t, other, "player", "guest", "--name", "Bob")

	g := runJSON[response.Game](t, owner, "game", "create")

	// Anyone signed in can look
	seen := runJSON[response.Game](t, other, "game", "get", g.ID)
	assert.Equal(t, g.ID, seen.ID)

	output, err := other.run("game", "place", g.ID, "0")
	assert.Error(t, err)
	assert.Contains(t, output, "NOT_OWNER")
}

func TestCLI_Presets(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	presets := runJSON[response.PresetList](t, cli, "presets")
	names := make([]string, 0, len(presets.Presets))
	for _, p := range presets.Presets {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "well")

	runJSON[response.AuthResponse](t, cli, "player", "guest", "--name", "Alice")
	g := runJSON[response.Game](t, cli, "game", "create", "--preset", "well")
	assert.Equal(t, "well", g.Preset)
}
