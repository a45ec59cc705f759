package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/repositories/memory"
	"github.com/yigit/uniadmin/internal/bootstrap"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &commandLine{
		storage: &bootstrap.Storage{Store: memory.NewStore()},
		logger:  zerolog.Nop(),
		out:     out,
	}, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	wantOut string
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: "Usage:"},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: "Usage:"},
		{name: "migrate on memory store", args: []string{"migrate"}, wantOut: "0 migration(s) applied"},
		{name: "migrate status on memory store", args: []string{"migrate", "-status"}, wantOut: "memory store: no migrations"},
		{name: "seed", args: []string{"seed"}, wantOut: "seed complete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			args := append([]string{"admin"}, tt.args...)

			err := cli.run(context.Background(), args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func Test_commandLine_seedTwice(t *testing.T) {
	cli, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, cli.run(ctx, []string{"admin", "seed"}))
	first, err := cli.storage.Store.Students().Count(ctx)
	require.NoError(t, err)

	require.NoError(t, cli.run(ctx, []string{"admin", "seed"}))
	second, err := cli.storage.Store.Students().Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(8), first)
	assert.Equal(t, first, second)
}
