package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/county"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage/memory"
)

func TestNewDefaultsToMemoryStores(t *testing.T) {
	application := New(Stores{}, Options{}, nil)

	require.NotNil(t, application.Users)
	require.NotNil(t, application.Reference)
	require.NotNil(t, application.Yields)
	require.NotNil(t, application.Reports)

	// The zero-value application must be usable end to end.
	err := application.Users.Register(context.Background(), "alice", "secret1", "will il")
	require.NoError(t, err)

	_, ok, err := application.Users.Authenticate(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewUsesProvidedStores(t *testing.T) {
	store := memory.New()
	store.SeedCounties(county.County{CountyState: "will il"})

	application := New(Stores{Reference: store}, Options{}, nil)

	counties, err := application.Reference.Counties(context.Background())
	require.NoError(t, err)
	assert.Len(t, counties, 1)
	assert.Equal(t, "will il", counties[0].CountyState)
}

func TestCollaboratorsDefaultNil(t *testing.T) {
	application := New(Stores{}, Options{}, nil)
	assert.Nil(t, application.Weather)
	assert.Nil(t, application.News)
}
