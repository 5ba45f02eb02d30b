package manifest

import (
	"bytes"
	"testing"

	"payloadkit/internal/config"
	"payloadkit/internal/instance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	conf, err := instance.Build(config.Config{DBAdapter: "postgres", DatabaseURI: "postgres://u:secret@h/db"}, nil)
	require.NoError(t, err)

	m := FromConfig(conf)
	assert.Equal(t, Admin{User: "users", Bundler: "webpack"}, m.Admin)
	assert.Equal(t, DB{Adapter: "postgres", URLSet: true}, m.DB)
	require.Len(t, m.Collections, 3)

	users := m.Collections[0]
	assert.True(t, users.Auth)
	assert.True(t, users.UseAPIKey)
	require.Len(t, users.Fields, 1)
	assert.True(t, users.Fields[0].Implicit)

	media := m.Collections[2]
	require.NotNil(t, media.Upload)
	assert.Equal(t, "/media", media.Upload.StaticURL)
	assert.Equal(t, "alt", media.Fields[0].Name)
	assert.False(t, media.Fields[0].Implicit)
	require.NotNil(t, media.Fields[1].Editor)
	assert.Equal(t, []string{"link"}, media.Fields[1].Editor.Elements)

	require.Len(t, m.Globals, 1)
	assert.Equal(t, "Site Name", m.Globals[0].Fields[0].Label)
}

func TestEncode_NoSecrets(t *testing.T) {
	conf, err := instance.Build(config.Config{DBAdapter: "mongodb", DatabaseURI: "mongodb://u:secret@h/db"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromConfig(conf)))
	out := buf.String()

	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "adapter: mongodb")
	assert.Contains(t, out, "staticURL: /media")

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, FromConfig(conf), back)
}
