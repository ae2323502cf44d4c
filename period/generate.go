// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package period

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gonih.org/calendar"
)

// GenerateAll generates the periods of each of the given types over
// [start, end) concurrently, keyed by type name. Without types, all types are
// generated.
//
// The first error cancels the remaining work and is returned. GenerateAll
// also stops early if ctx is done.
func GenerateAll(ctx context.Context, cal calendar.Calendar, start, end calendar.DateTimeUnit, types ...Type) (map[string][]Period, error) {
	if len(types) == 0 {
		types = all
	}
	results := make([][]Period, len(types))

	g, ctx := errgroup.WithContext(ctx)
	for i, t := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ps, err := t.Generate(cal, start, end)
			if err != nil {
				return fmt.Errorf("%s: %w", t.Name(), err)
			}
			results[i] = ps
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := make(map[string][]Period, len(types))
	for i, t := range types {
		m[t.Name()] = results[i]
	}
	return m, nil
}
