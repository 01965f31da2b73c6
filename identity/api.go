// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package identity turns the identifiers found in roster files into the
// participant keys the matcher compares.
package identity

type Unifier interface {
	Unify(key string) string
}
