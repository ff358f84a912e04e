package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/weft/cmd/weft/commands"
	"go.trai.ch/weft/internal/adapters/config"
	"go.trai.ch/weft/internal/adapters/logger"
	"go.trai.ch/weft/internal/adapters/telemetry"
	"go.trai.ch/weft/internal/app"
)

func newCLI(t *testing.T) (*commands.CLI, *bytes.Buffer) {
	t.Helper()
	log := logger.New()
	log.SetOutput(new(bytes.Buffer))
	a := app.New(config.NewLoader(), telemetry.NewNoOpProbe(), log)
	cli := commands.New(a)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	return cli, out
}

func TestVersionCommand(t *testing.T) {
	cli, out := newCLI(t)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "weft version")
}

func TestRunCommand_MissingConfig(t *testing.T) {
	cli, _ := newCLI(t)
	cli.SetArgs([]string{"run", t.TempDir()})

	require.Error(t, cli.Execute(context.Background()))
}

func TestRunCommand_Pipeline(t *testing.T) {
	dir := t.TempDir()
	pipeline := `
buffers:
  data: 1024
tasks:
  - name: fill
    out: [data]
  - name: drain
    in: [data]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(pipeline), 0o600))

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"run", dir})

	require.NoError(t, cli.Execute(context.Background()))
}

func TestGraphCommand_MissingConfig(t *testing.T) {
	cli, _ := newCLI(t)
	cli.SetArgs([]string{"graph", t.TempDir()})

	require.Error(t, cli.Execute(context.Background()))
}
