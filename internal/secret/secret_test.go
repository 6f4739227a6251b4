package secret_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/payflow/internal/secret"
)

func TestEnv_Get(t *testing.T) {
	t.Setenv("PAYFLOW_TEST_SILAE_CLIENT_ID", "  abc\n")
	t.Setenv("PAYFLOW_TEST_EMPTY", "   ")

	s := secret.NewEnv("PAYFLOW_TEST_")

	v, err := s.Get(context.Background(), "SILAE_CLIENT_ID")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, err = s.Get(context.Background(), "EMPTY")
	assert.ErrorIs(t, err, secret.ErrNotFound)

	_, err = s.Get(context.Background(), "MISSING")
	assert.ErrorIs(t, err, secret.ErrNotFound)
	assert.ErrorContains(t, err, "MISSING")
}

func TestStatic_Get(t *testing.T) {
	s := secret.NewStatic(map[string]string{"PAYFLOW_PASSWORD": "pw"})

	v, err := s.Get(context.Background(), "PAYFLOW_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "pw", v)

	_, err = s.Get(context.Background(), "OTHER")
	assert.ErrorIs(t, err, secret.ErrNotFound)
}
