// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultOutputPrefix = "secret_santa_result"
	timestampLayout     = "20060102_150405"
)

// OutputName returns dir/prefix_YYYYMMDD_HHMMSS.csv for the given time.
func OutputName(dir, prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultOutputPrefix
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, now.Format(timestampLayout)))
}

// EncodePairings writes the header and one row per pairing, with the
// columns always in the order employee name, employee id, child name,
// child id.
func EncodePairings(w io.Writer, pairings []Pairing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pairingColumns); err != nil {
		return err
	}
	for _, p := range pairings {
		if err := cw.Write([]string{p.EmployeeName, p.EmployeeEmail, p.ChildName, p.ChildEmail}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResults writes pairings to path. The table is written to a
// temporary file next to path and renamed into place, so path either holds
// the complete table or does not exist.
func WriteResults(path string, pairings []Pairing) (err error) {
	if len(pairings) == 0 {
		return ErrNoRows
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".santa-*.csv")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = EncodePairings(tmp, pairings); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
