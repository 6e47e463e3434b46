package main

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustyhq/musty/core/study"
	snapshotdb "github.com/mustyhq/musty/storage/snapshot"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	return &commandLine{
		db:    &sqlx.DB{},
		store: snapshotdb.Open(snapshotdb.NewMemoryBackend(), nil),
	}
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no args", args: []string{"admin"}, wantErr: errHelp},
		{name: "unknown command", args: []string{"admin", "party"}, wantErr: errHelp},
		{name: "migrate without subcommand", args: []string{"admin", "migrate"}, wantErr: errHelp},
		{name: "inspect", args: []string{"admin", "inspect"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(tt.args)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var gotCommand string
	var gotArgs []string
	origRun := gooseRunFunc
	gooseRunFunc = func(command string, _ *sql.DB, _ string, args ...string) error {
		gotCommand, gotArgs = command, args
		return nil
	}
	defer func() { gooseRunFunc = origRun }()

	require.NoError(t, cli.run([]string{"admin", "migrate", "up"}))
	assert.Equal(t, "up", gotCommand)
	assert.Empty(t, gotArgs)

	require.NoError(t, cli.run([]string{"admin", "migrate", "down-to", "1"}))
	assert.Equal(t, "down-to", gotCommand)
	assert.Equal(t, []string{"1"}, gotArgs)
}

func Test_commandLine_inspect(t *testing.T) {
	cli := setup(t)

	svc := study.NewService(cli.store)
	_, err := svc.CreateCourse(study.NewCourse{Name: "Data Structures"})
	require.NoError(t, err)

	assert.NoError(t, cli.inspect())
}
