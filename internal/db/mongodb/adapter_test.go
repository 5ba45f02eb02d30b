package mongodb

import (
	"testing"

	"payloadkit/internal/db"
	"payloadkit/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDatabaseName(t *testing.T) {
	name, err := DatabaseName("mongodb://localhost:27017/cms")
	require.NoError(t, err)
	assert.Equal(t, "cms", name)

	name, err = DatabaseName("mongodb://u:p@localhost:27017")
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabase, name)

	_, err = DatabaseName("")
	assert.Error(t, err)
}

func TestPlan(t *testing.T) {
	plan := Plan(db.Schema{
		Collections: []schema.Collection{
			{Slug: "users", Auth: &schema.Auth{}},
			{Slug: "posts", Fields: []schema.Field{{Name: "title", Kind: schema.KindText}}},
			{Slug: "media", Upload: &schema.Upload{StaticURL: "/media"}},
		},
		Globals: []schema.Global{{Slug: "settings"}},
	})

	require.Len(t, plan, 4)
	assert.Equal(t, "users", plan[0].Collection)
	require.Len(t, plan[0].Indexes, 1)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, plan[0].Indexes[0].Keys)
	assert.True(t, *plan[0].Indexes[0].Options.Unique)

	assert.Equal(t, "posts", plan[1].Collection)
	assert.Empty(t, plan[1].Indexes)

	assert.Equal(t, bson.D{{Key: "filename", Value: 1}}, plan[2].Indexes[0].Keys)

	assert.Equal(t, GlobalsCollection, plan[3].Collection)
	assert.Equal(t, bson.D{{Key: "globalType", Value: 1}}, plan[3].Indexes[0].Keys)
}

func TestPlan_NoGlobals(t *testing.T) {
	plan := Plan(db.Schema{Collections: []schema.Collection{{Slug: "posts"}}})
	require.Len(t, plan, 1)
}

func TestAdapter_EmptyURL(t *testing.T) {
	a := NewAdapter(Args{})
	assert.Equal(t, "mongodb", a.Name())
	assert.Equal(t, "", a.URL())

	err := a.Connect(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongodb connect:")
	assert.ErrorIs(t, a.Migrate(t.Context(), db.Schema{}), ErrNotConnected)
	assert.NoError(t, a.Close(t.Context()))
}
