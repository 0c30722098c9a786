package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rotfit/internal/adapters/driven/minimizer/neldermead"
	"github.com/custodia-labs/rotfit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rotfit/internal/core/domain"
	"github.com/custodia-labs/rotfit/internal/core/services"
)

// setupTestServices installs real services over an in-memory config store.
func setupTestServices() func() {
	SetServices(&Services{
		Fit:    services.NewFitService(neldermead.New(neldermead.WithProgressInterval(0))),
		Config: services.NewConfigService(memory.NewConfigStore()),
	})
	return func() {
		SetServices(nil)
		resetFlags()
	}
}

func resetFlags() {
	verbose = false
	configPath = ""
	outputFormat = formatTable
	fitWatch = false
	configForce = false
}

func executeCmd(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// mockFitService fails every call with err.
type mockFitService struct {
	err error
}

func (m *mockFitService) Run(_ context.Context, _ domain.FitConfig) (*domain.FitReport, error) {
	return nil, m.err
}

func (m *mockFitService) Evaluate(_ domain.FitConfig, _ domain.FreeParams) (*domain.FitReport, error) {
	return nil, m.err
}

func (m *mockFitService) Objective(_ domain.FitConfig, _ domain.FreeParams) (float64, error) {
	return 0, m.err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "rotfit", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	verboseFlag := flags.Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	configFlag := flags.Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)

	formatFlag := flags.Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "table", formatFlag.DefValue)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"fit", "eval", "config", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_RunsFit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCmd()

	require.NoError(t, err)
	assert.Contains(t, out, "Objective (partial):")
	assert.Contains(t, out, "p6 (mₑ):")
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCmd("extra")

	assert.Error(t, err)
}

func TestRootCmd_UnknownFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCmd("--format", "yaml")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRootCmd_Bootstrap(t *testing.T) {
	defer resetFlags()
	defer SetBootstrap(nil)
	defer SetServices(nil)

	var gotPath string
	SetBootstrap(func(path string) (*Services, error) {
		gotPath = path
		return &Services{
			Fit:    &mockFitService{},
			Config: services.NewConfigService(memory.NewConfigStore()),
		}, nil
	})

	out, err := executeCmd("config", "show", "--config", "/tmp/rotfit.toml")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/rotfit.toml", gotPath)
	assert.Contains(t, out, "Current Config")
}

func TestRootCmd_BootstrapError(t *testing.T) {
	defer resetFlags()
	defer SetBootstrap(nil)

	SetBootstrap(func(string) (*Services, error) {
		return nil, assert.AnError
	})

	_, err := executeCmd("config", "show")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSetServices_Nil(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	SetServices(nil)

	assert.Nil(t, fitService)
	assert.Nil(t, configService)
	assert.Nil(t, configWatcher)
}
