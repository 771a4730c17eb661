// file: internal/host/memory_test.go
package host

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHost_SceneRoot_ReturnsDeepCopy(t *testing.T) {
	h := NewMemoryHost()
	h.SetSceneRoot(&SceneNode{
		ID: "root", Name: "Scene", Type: "scene",
		Children: []*SceneNode{{ID: "n1", Name: "Camera", Type: "camera"}},
	})

	root, err := h.SceneRoot(context.Background())
	require.NoError(t, err)
	root.Children[0].Name = "mutated"

	again, err := h.SceneRoot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Camera", again.Children[0].Name, "Callers must not be able to mutate host state through a snapshot.")
}

func TestMemoryHost_CreateAsset_AssignsIDAndIndexes(t *testing.T) {
	h := NewMemoryHost()
	ctx := context.Background()

	created, err := h.CreateAsset(ctx, "hero", "material")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "material", created.Type)

	assets, err := h.Assets(ctx, "material")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, created.ID, assets[0].ID)
}

func TestMemoryHost_CreateAsset_RejectsEmptyFields(t *testing.T) {
	h := NewMemoryHost()
	_, err := h.CreateAsset(context.Background(), "", "material")
	assert.Error(t, err)
	_, err = h.CreateAsset(context.Background(), "hero", "")
	assert.Error(t, err)
}

func TestMemoryHost_Assets_FiltersByType(t *testing.T) {
	h := NewMemoryHost()
	h.AddAsset(Asset{ID: "a1", Name: "hero", Type: "material", Path: "assets/material/hero"})
	h.AddAsset(Asset{ID: "a2", Name: "idle", Type: "animation", Path: "assets/animation/idle"})

	all, err := h.Assets(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	materials, err := h.Assets(context.Background(), "material")
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "a1", materials[0].ID)
}

func TestMemoryHost_ModifyAsset_AppliesKnownFields(t *testing.T) {
	h := NewMemoryHost()
	h.AddAsset(Asset{ID: "a1", Name: "hero", Type: "material", Path: "assets/material/hero"})

	updated, err := h.ModifyAsset(context.Background(), "a1", map[string]any{"name": "villain"})
	require.NoError(t, err)
	assert.Equal(t, "villain", updated.Name)

	_, err = h.ModifyAsset(context.Background(), "a1", map[string]any{"color": "red"})
	assert.Error(t, err, "Unknown fields must be rejected.")

	_, err = h.ModifyAsset(context.Background(), "missing", map[string]any{"name": "x"})
	assert.Error(t, err, "Missing asset must be rejected.")
}

func TestMemoryHost_LogSubscription_DeliversAndUnsubscribes(t *testing.T) {
	h := NewMemoryHost()

	var mu sync.Mutex
	var got []LogEntry
	unsubscribe := h.Subscribe(func(e LogEntry) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})

	h.Log("info", "first")
	unsubscribe()
	h.Log("info", "second")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1, "Entries after unsubscribe must not be delivered.")
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "info", got[0].Level)
}

func TestMemoryHost_ConcurrentMutation_IsSafe(t *testing.T) {
	h := NewMemoryHost()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.CreateAsset(ctx, "asset", "prefab")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assets, err := h.Assets(ctx, "prefab")
	require.NoError(t, err)
	assert.Len(t, assets, 20)

	seen := make(map[string]bool)
	for _, a := range assets {
		assert.False(t, seen[a.ID], "Asset IDs must be unique under concurrency.")
		seen[a.ID] = true
	}
}
