package inmemorymetadata_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumengive/stellar-sdk/metadata"
	inmemorymetadata "github.com/lumengive/stellar-sdk/metadata/inmemory"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	storeSvc := inmemorymetadata.NewStore()

	project, err := storeSvc.GetProject(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, project)

	want := metadata.Project{
		ID:           "p1",
		Title:        "Clean water for everyone",
		Description:  "Wells in rural districts",
		Goal:         5000,
		OwnerAddress: "GBZXN7PIRZGNMHGA7MUUUF4GWPY5AYPV6LY4UV2GL6VJGIQRXFDNMADI",
		TxHash:       "89ab0c3f",
		CreatedAt:    time.Unix(1726054898, 0),
		UpdatedAt:    time.Unix(1726054898, 0),
	}
	require.NoError(t, storeSvc.CreateProject(ctx, want))

	// Duplicate creation is rejected.
	require.Error(t, storeSvc.CreateProject(ctx, want))

	project, err = storeSvc.GetProject(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, project)
	require.Equal(t, want, *project)

	want.Title = "Clean water for every village"
	want.UpdatedAt = time.Unix(1726486359, 0)
	require.NoError(t, storeSvc.UpdateProject(ctx, want))

	project, err = storeSvc.GetProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Clean water for every village", project.Title)

	// Updating an unknown project fails.
	missing := want
	missing.ID = "p2"
	require.Error(t, storeSvc.UpdateProject(ctx, missing))
}
