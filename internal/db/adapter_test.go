package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"mongodb":    KindMongoDB,
		"Mongoose":   KindMongoDB,
		" postgres ": KindPostgres,
		"postgresql": KindPostgres,
		"pg":         KindPostgres,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown database adapter "sqlite"`)
}
