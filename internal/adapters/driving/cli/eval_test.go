package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rotfit/internal/core/domain"
)

func TestEvalCmd_Use(t *testing.T) {
	assert.Equal(t, "eval p6 p7 p8 p9", evalCmd.Use)
}

func TestEvalCmd_RequiresFourArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCmd("eval", "1", "2", "3")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 4 arg(s)")
}

func TestEvalCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCmd("eval", "--", "-21.6", "0.9", "3.0", "0.0")

	require.NoError(t, err)
	assert.Contains(t, out, "Objective (partial): 3.061e+01")
	assert.Contains(t, out, "Evaluated at the given exponents (no fit)")
	assert.Contains(t, out, "p6 (mₑ): -21.600000")
	assert.NotContains(t, out, "Iterations:")
}

func TestEvalCmd_InvalidNumber(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCmd("eval", "1", "two", "3", "4")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseFreeParams(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    domain.FreeParams
		wantErr bool
	}{
		{"valid", []string{"-21.6", "0.9", "3", "0"}, domain.FreeParams{-21.6, 0.9, 3, 0}, false},
		{"scientific", []string{"1e-3", "2E2", "0", "-0"}, domain.FreeParams{1e-3, 200, 0, 0}, false},
		{"not a number", []string{"x", "0", "0", "0"}, domain.FreeParams{}, true},
		{"nan", []string{"NaN", "0", "0", "0"}, domain.FreeParams{}, true},
		{"infinite", []string{"0", "+Inf", "0", "0"}, domain.FreeParams{}, true},
		{"too few", []string{"0", "0"}, domain.FreeParams{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFreeParams(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
