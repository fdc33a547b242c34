package limits

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuardDepth(t *testing.T) {
	g := NewGuard(&Config{MaxDepth: 2})
	require.NoError(t, g.EnterDepth())
	require.NoError(t, g.EnterDepth())
	err := g.EnterDepth()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDepth))
	require.True(t, errors.Is(err, ErrLimit))

	g.ExitDepth()
	require.NoError(t, g.EnterDepth())
}

func TestGuardCheckSize(t *testing.T) {
	g := NewGuard(&Config{MaxSize: 100})
	require.NoError(t, g.CheckSize(100))
	require.True(t, errors.Is(g.CheckSize(101), ErrSize))
}

func TestGuardString(t *testing.T) {
	g := NewGuard(&Config{MaxStringLen: 5})
	require.NoError(t, g.AddString(5))
	require.True(t, errors.Is(g.AddString(6), ErrStringLen))
}

func TestGuardEntries(t *testing.T) {
	g := NewGuard(&Config{MaxEntries: 3})
	require.NoError(t, g.AddEntry(2))
	require.True(t, errors.Is(g.AddEntry(3), ErrEntries))
}

func TestDefaults(t *testing.T) {
	g := NewGuard(nil)
	cfg := g.Config()
	require.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	require.Equal(t, DefaultMaxSize, cfg.MaxSize)

	// zero fields fall back per-field
	g = NewGuard(&Config{MaxDepth: 4})
	cfg = g.Config()
	require.Equal(t, 4, cfg.MaxDepth)
	require.Equal(t, DefaultMaxEntries, cfg.MaxEntries)
}
