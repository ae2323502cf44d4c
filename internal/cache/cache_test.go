// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestGetMemoizes(t *testing.T) {
	var (
		c     Cache[int, string]
		calls int
	)
	fill := func(k int) string {
		calls++
		return strconv.Itoa(k)
	}
	for i := 0; i < 3; i++ {
		if got := c.Get(42, fill); got != "42" {
			t.Fatalf("Get(42) = %q, want %q", got, "42")
		}
	}
	if calls != 1 {
		t.Errorf("fill called %d times, want 1", calls)
	}
}

func TestGetEvicts(t *testing.T) {
	c := Cache[int, int]{MaxSize: 4}
	for i := 0; i < 100; i++ {
		if got := c.Get(i, func(k int) int { return k * k }); got != i*i {
			t.Fatalf("Get(%d) = %d, want %d", i, got, i*i)
		}
		if n := c.Len(); n > 4 {
			t.Fatalf("Len() = %d after %d inserts, want <= 4", n, i+1)
		}
	}
}

func TestGetConcurrent(t *testing.T) {
	var (
		c  Cache[int, int]
		wg sync.WaitGroup
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if got := c.Get(i%50, func(k int) int { return k + 1 }); got != i%50+1 {
					t.Errorf("Get(%d) = %d, want %d", i%50, got, i%50+1)
					return
				}
			}
		}()
	}
	wg.Wait()
	if n := c.Len(); n != 50 {
		t.Errorf("Len() = %d, want 50", n)
	}
}
