// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package identity

// AliasRecord maps a key used in an earlier period to the key the same
// person uses now.
type AliasRecord struct {
	From string
	To   string
}

type aliasUnifier struct {
	orig Unifier
	recs map[string]string
}

// NewAliasUnifier applies orig, then replaces keys found in records.
// Both sides of every record are unified with orig first. Aliases are
// resolved one hop only; chains are not followed.
func NewAliasUnifier(orig Unifier, records []AliasRecord) Unifier {
	recs := make(map[string]string, len(records))
	for _, rec := range records {
		from := orig.Unify(rec.From)
		if from == "" {
			continue
		}
		recs[from] = orig.Unify(rec.To)
	}
	return &aliasUnifier{
		orig: orig,
		recs: recs,
	}
}

func (u *aliasUnifier) Unify(key string) string {
	key = u.orig.Unify(key)
	if to, ok := u.recs[key]; ok {
		return to
	}
	return key
}
