package cache

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Sum returns a short stable hex digest of data.
func Sum(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// SumNames returns a stable hex digest of an ordered list of names.
func SumNames(names []string) string {
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(names, "-")), 16)
}

// EnsureFingerprint compares sum with the value recorded under key. When they
// differ, the whole store is cleared and sum is recorded. It reports whether
// the store was cleared.
func EnsureFingerprint(s Store, key, sum string) (bool, error) {
	if v, ok := s.Get(key); ok && len(v) == 1 && v[0] == sum {
		return false, nil
	}
	if err := s.Clear(""); err != nil {
		return false, err
	}
	if err := s.Set(key, []string{sum}); err != nil {
		return true, err
	}
	return true, nil
}
