// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package identity

import "strings"

type baseUnifier struct {
	foldCase bool
}

// NewUnifier trims surrounding whitespace and, when foldCase is set,
// lower-cases keys so that "Ann@Example.com" and "ann@example.com" name
// the same participant.
func NewUnifier(foldCase bool) Unifier {
	return baseUnifier{foldCase: foldCase}
}

func (u baseUnifier) Unify(key string) string {
	key = strings.TrimSpace(key)
	if u.foldCase {
		key = strings.ToLower(key)
	}
	return key
}
