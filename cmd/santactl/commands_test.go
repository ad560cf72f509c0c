package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secret-santa-backend/internal/bootstrap"
	"secret-santa-backend/internal/common/config"
	exchangemodels "secret-santa-backend/internal/features/exchange/models"
	usermodels "secret-santa-backend/internal/features/user/models"
)

func testLoader(t *testing.T) appLoader {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = port
	cfg.Store.Driver = config.StoreDriverRedis
	cfg.Draw.DefaultExchangeID = "global-exchange"

	return func(ctx context.Context, _ bool) (*bootstrap.App, *config.Config, error) {
		app, err := bootstrap.New(ctx, cfg, zerolog.Nop())
		return app, cfg, err
	}
}

func run(t *testing.T, load appLoader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(load, &out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDrawAndInspect(t *testing.T) {
	load := testLoader(t)

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := run(t, load, "users", "add", "--id", name, "--name", name, "--email", name+"@example.com")
		require.NoError(t, err)
	}

	out, err := run(t, load, "users", "list")
	require.NoError(t, err)
	var users usermodels.UsersResponse
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	assert.Equal(t, 3, users.Total)

	out, err = run(t, load, "draw")
	require.NoError(t, err)
	var result exchangemodels.DrawResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "global-exchange", result.ExchangeID)
	assert.Len(t, result.Assignments, 3)

	out, err = run(t, load, "assignments", "global-exchange")
	require.NoError(t, err)
	var listed exchangemodels.AssignmentsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.ElementsMatch(t, result.Assignments, listed.Assignments)

	out, err = run(t, load, "assignments", "--giver", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, `"alice"`)

	out, err = run(t, load, "exchanges")
	require.NoError(t, err)
	assert.Contains(t, out, "global-exchange")

	out, err = run(t, load, "reset")
	require.NoError(t, err)
	var reset map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &reset))
	assert.EqualValues(t, 3, reset["removed"])
}

func TestDrawNeedsTwoParticipants(t *testing.T) {
	load := testLoader(t)

	_, err := run(t, load, "users", "add", "--id", "solo", "--name", "Solo", "--email", "solo@example.com")
	require.NoError(t, err)

	_, err = run(t, load, "draw", "office")
	assert.Error(t, err)
}

func TestUsersAddRequiresFlags(t *testing.T) {
	_, err := run(t, testLoader(t), "users", "add", "--name", "NoEmail")
	assert.Error(t, err)
}

func TestUsersRemove(t *testing.T) {
	load := testLoader(t)

	_, err := run(t, load, "users", "add", "--id", "dave", "--name", "Dave", "--email", "dave@example.com")
	require.NoError(t, err)

	out, err := run(t, load, "users", "remove", "dave")
	require.NoError(t, err)
	assert.Equal(t, "removed dave\n", out)

	_, err = run(t, load, "users", "remove", "dave")
	assert.Error(t, err)
}

func TestLoaderErrorIsReturned(t *testing.T) {
	load := func(context.Context, bool) (*bootstrap.App, *config.Config, error) {
		return nil, nil, assert.AnError
	}
	_, err := run(t, load, "exchanges")
	assert.ErrorIs(t, err, assert.AnError)
}
