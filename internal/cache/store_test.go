package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	lruStore, err := NewLRU(16)
	require.NoError(t, err)

	badgerStore, err := OpenBadger("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = badgerStore.Close() })

	return map[string]Store{
		BackendMemory: NewMemory(),
		BackendLRU:    lruStore,
		BackendBadger: badgerStore,
	}
}

func TestStore_SetGetHas(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.False(t, s.Has("ListedPageClasses-Classes"))

			got, ok := s.Get("ListedPageClasses-Classes")
			require.False(t, ok)
			require.Nil(t, got)

			require.NoError(t, s.Set("ListedPageClasses-Classes", []string{"ArticlePage", "EventPage"}))
			require.True(t, s.Has("ListedPageClasses-Classes"))

			got, ok = s.Get("ListedPageClasses-Classes")
			require.True(t, ok)
			require.Equal(t, []string{"ArticlePage", "EventPage"}, got)
		})
	}
}

func TestStore_EmptyListIsPresent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("empty", nil))
			got, ok := s.Get("empty")
			require.True(t, ok)
			require.Empty(t, got)
		})
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := []string{"ArticlePage"}
			require.NoError(t, s.Set("k", in))
			in[0] = "Mutated"

			got, _ := s.Get("k")
			require.Equal(t, []string{"ArticlePage"}, got)

			got[0] = "MutatedAgain"
			again, _ := s.Get("k")
			require.Equal(t, []string{"ArticlePage"}, again)
		})
	}
}

func TestStore_ClearPrefix(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("ListedPageClasses-Classes", []string{"ArticlePage"}))
			require.NoError(t, s.Set("ListedPageClasses-IncludeSubclasses-abc", []string{"ArticlePage"}))
			require.NoError(t, s.Set("ListingsRootClasses-Classes", []string{"NewsSection"}))

			require.NoError(t, s.Clear("ListedPageClasses-"))

			require.False(t, s.Has("ListedPageClasses-Classes"))
			require.False(t, s.Has("ListedPageClasses-IncludeSubclasses-abc"))
			require.True(t, s.Has("ListingsRootClasses-Classes"))

			require.NoError(t, s.Clear(""))
			require.False(t, s.Has("ListingsRootClasses-Classes"))
		})
	}
}

func TestLRU_Evicts(t *testing.T) {
	s, err := NewLRU(2)
	require.NoError(t, err)

	require.NoError(t, s.Set("a", []string{"A"}))
	require.NoError(t, s.Set("b", []string{"B"}))
	require.NoError(t, s.Set("c", []string{"C"}))

	require.False(t, s.Has("a"))
	require.True(t, s.Has("c"))
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set("ListingsRootClasses-Classes", []string{"NewsSection"}))
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.Get("ListingsRootClasses-Classes")
	require.True(t, ok)
	require.Equal(t, []string{"NewsSection"}, got)
}

func TestBadger_SecondOpenIsLocked(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = OpenBadger(dir, nil)
	require.ErrorIs(t, err, ErrLocked)

	_, err = Open(Config{Backend: BackendBadger, Dir: dir})
	require.ErrorIs(t, err, ErrLocked)
}

func TestOpen(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)
	require.IsType(t, &Memory{}, s)

	s, err = Open(Config{Backend: "LRU"})
	require.NoError(t, err)
	require.IsType(t, &LRU{}, s)

	s, err = Open(Config{Backend: BackendBadger})
	require.NoError(t, err)
	require.IsType(t, &Badger{}, s)
	require.NoError(t, s.Close())

	_, err = Open(Config{Backend: "redis"})
	require.Error(t, err)
}
