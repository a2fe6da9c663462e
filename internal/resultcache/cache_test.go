package resultcache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func key(n int) Key {
	return Key{Fingerprint: fmt.Sprintf("fp-%d", n), Op: "composition", Params: ""}
}

func TestGetOrCompute_Idempotent(t *testing.T) {
	c := New(8)

	// compute has an observable side effect; it must run exactly once.
	calls := 0
	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute(key(1), func() (any, error) {
			calls++
			return "result", nil
		})
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if v != "result" {
			t.Fatalf("value = %v, want \"result\"", v)
		}
	}

	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrCompute_DistinctKeys(t *testing.T) {
	c := New(8)

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	if _, err := c.GetOrCompute(key(1), compute); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute(key(2), compute); err != nil {
		t.Fatal(err)
	}
	// Same fingerprint, different params is a distinct entry.
	k := key(1)
	k.Params = "k=3"
	if _, err := c.GetOrCompute(k, compute); err != nil {
		t.Fatal(err)
	}

	if calls != 3 {
		t.Errorf("compute ran %d times, want 3", calls)
	}
}

func TestGetOrCompute_ErrorsNotCached(t *testing.T) {
	c := New(8)

	calls := 0
	boom := errors.New("analyzer broke")

	for i := 0; i < 2; i++ {
		_, err := c.GetOrCompute(key(1), func() (any, error) {
			calls++
			return nil, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want %v", err, boom)
		}
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 (errors are retried)", calls)
	}
	if c.Len() != 0 {
		t.Errorf("cache holds %d entries after failures, want 0", c.Len())
	}

	// A later success is cached normally.
	v, err := c.GetOrCompute(key(1), func() (any, error) { return 42, nil })
	if err != nil || v != 42 {
		t.Fatalf("GetOrCompute = %v, %v", v, err)
	}
	if !c.Contains(key(1)) {
		t.Error("successful result not cached")
	}
}

func TestLRUEviction(t *testing.T) {
	c := New(2)

	mustPut := func(k Key, v any) {
		t.Helper()
		if _, err := c.GetOrCompute(k, func() (any, error) { return v, nil }); err != nil {
			t.Fatal(err)
		}
	}

	mustPut(key(1), 1)
	mustPut(key(2), 2)

	// Touch key 1 so key 2 becomes least recently used.
	if _, ok := c.Get(key(1)); !ok {
		t.Fatal("key 1 missing")
	}

	mustPut(key(3), 3)

	if !c.Contains(key(1)) {
		t.Error("recently used key 1 evicted")
	}
	if c.Contains(key(2)) {
		t.Error("least recently used key 2 survived eviction")
	}
	if !c.Contains(key(3)) {
		t.Error("new key 3 missing")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestGetOrCompute_Coalescing(t *testing.T) {
	c := New(8)

	var computes atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	slow := func() (any, error) {
		computes.Add(1)
		close(started)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 10)

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := c.GetOrCompute(key(1), slow)
		if err != nil {
			t.Error(err)
		}
		results[0] = v
	}()

	<-started

	// These arrive while the first compute is in flight; they must block
	// and share its result rather than recompute.
	for i := 1; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute(key(1), func() (any, error) {
				computes.Add(1)
				return "recomputed", nil
			})
			if err != nil {
				t.Error(err)
			}
			results[i] = v
		}(i)
	}

	// Give the followers a moment to reach the in-flight wait.
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := computes.Load(); n != 1 {
		t.Errorf("compute ran %d times, want 1", n)
	}
	for i, v := range results {
		if v != "shared" {
			t.Errorf("results[%d] = %v, want \"shared\"", i, v)
		}
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	c := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		k := key(i)
		if _, err := c.GetOrCompute(k, func() (any, error) { return i, nil }); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != DefaultCapacity {
		t.Errorf("Len = %d, want %d", c.Len(), DefaultCapacity)
	}
}
