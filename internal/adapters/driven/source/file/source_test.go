package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
)

const waitFor = 5 * time.Second

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func nextUpdate(t *testing.T, ch <-chan domain.SourceUpdate) domain.SourceUpdate {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "channel closed")
		return u
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for update")
		return domain.SourceUpdate{}
	}
}

func TestSource_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robots.txt")
	writeFile(t, path, "User-agent: *\nDisallow: /\n")

	body, err := NewSource().Read(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nDisallow: /\n", string(body))
}

func TestSource_Read_Missing(t *testing.T) {
	_, err := NewSource().Read(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))

	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSource_Read_Stdin(t *testing.T) {
	source := NewSource(WithStdin(strings.NewReader("User-agent: FooBot\n")))

	body, err := source.Read(context.Background(), Stdin)

	require.NoError(t, err)
	assert.Equal(t, "User-agent: FooBot\n", string(body))
}

func TestSource_Read_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource().Read(ctx, "robots.txt")

	require.ErrorIs(t, err, context.Canceled)
}

func TestSource_Watch_RejectsStdin(t *testing.T) {
	_, err := NewSource().Watch(context.Background(), Stdin)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSource_Watch_Missing(t *testing.T) {
	_, err := NewSource().Watch(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))

	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSource_Watch_DeliversChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robots.txt")
	writeFile(t, path, "v1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := NewSource(WithDebounce(20*time.Millisecond)).Watch(ctx, path)
	require.NoError(t, err)

	first := nextUpdate(t, updates)
	assert.Equal(t, path, first.Location)
	assert.Equal(t, "v1", string(first.Body))

	writeFile(t, path, "v2")
	second := nextUpdate(t, updates)
	require.NoError(t, second.Err)
	assert.Equal(t, "v2", string(second.Body))
}

func TestSource_Watch_FollowsRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robots.txt")
	writeFile(t, path, "old")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := NewSource(WithDebounce(20*time.Millisecond)).Watch(ctx, path)
	require.NoError(t, err)
	nextUpdate(t, updates)

	tmp := filepath.Join(dir, "robots.txt.tmp")
	writeFile(t, tmp, "new")
	require.NoError(t, os.Rename(tmp, path))

	u := nextUpdate(t, updates)
	assert.Equal(t, "new", string(u.Body))
}

func TestSource_Watch_ReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robots.txt")
	writeFile(t, path, "v1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := NewSource(WithDebounce(20*time.Millisecond)).Watch(ctx, path)
	require.NoError(t, err)
	nextUpdate(t, updates)

	require.NoError(t, os.Remove(path))
	u := nextUpdate(t, updates)
	require.ErrorIs(t, u.Err, domain.ErrSourceUnavailable)

	writeFile(t, path, "v1")
	u = nextUpdate(t, updates)
	require.NoError(t, u.Err)
	assert.Equal(t, "v1", string(u.Body), "content returns after a failure")
}

func TestSource_Watch_ClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robots.txt")
	writeFile(t, path, "v1")

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := NewSource().Watch(ctx, path)
	require.NoError(t, err)
	nextUpdate(t, updates)

	cancel()

	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(waitFor):
		t.Fatal("channel not closed after cancel")
	}
}
