package intern

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntern(t *testing.T) {
	tab := New()
	a := tab.Intern("key")
	b := tab.Intern(string([]byte("key")))
	require.Equal(t, "key", a)
	require.Equal(t, a, b)
	require.Equal(t, 1, tab.Len())

	tab.Intern("other")
	require.Equal(t, 2, tab.Len())
}

func TestInternConcurrent(t *testing.T) {
	tab := New()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tab.Intern("k" + strconv.Itoa(i%10))
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 10, tab.Len())
}
