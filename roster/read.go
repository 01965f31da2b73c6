// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/someonegg/secretsanta/identity"
)

// utf8BOM is prepended to the header by some spreadsheet exports.
const utf8BOM = "\ufeff"

// ReadEmployees reads and validates a participant table. Identifiers are
// compared after unification with u; a nil u only trims whitespace.
func ReadEmployees(path string, u identity.Unifier) ([]Employee, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeEmployees(f, u)
}

// DecodeEmployees validates that every row names an employee and an
// identifier, and that no identifier repeats.
func DecodeEmployees(r io.Reader, u identity.Unifier) ([]Employee, error) {
	if u == nil {
		u = identity.NewUnifier(false)
	}

	rows, err := decodeTable(r, employeeColumns)
	if err != nil {
		return nil, err
	}

	employees := make([]Employee, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		e := Employee{Name: row[0], Email: row[1]}
		key := u.Unify(e.Email)
		if key == "" {
			return nil, &ValidationError{Row: i + 1, Column: ColEmployeeEmail, Err: ErrEmptyValue}
		}
		if _, ok := seen[key]; ok {
			return nil, &ValidationError{Row: i + 1, Column: ColEmployeeEmail, Value: e.Email, Err: ErrDuplicateKey}
		}
		seen[key] = i
		employees[i] = e
	}
	return employees, nil
}

// ReadPrior reads and validates an assignment table from an earlier period.
// Giver identifiers are compared after unification with u; a nil u only
// trims whitespace.
func ReadPrior(path string, u identity.Unifier) ([]Pairing, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodePairings(f, u)
}

// DecodePairings validates that every row carries all four assignment
// columns and that no employee appears twice as a giver.
func DecodePairings(r io.Reader, u identity.Unifier) ([]Pairing, error) {
	if u == nil {
		u = identity.NewUnifier(false)
	}

	rows, err := decodeTable(r, pairingColumns)
	if err != nil {
		return nil, err
	}

	pairings := make([]Pairing, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		p := Pairing{
			EmployeeName:  row[0],
			EmployeeEmail: row[1],
			ChildName:     row[2],
			ChildEmail:    row[3],
		}
		key := u.Unify(p.EmployeeEmail)
		if _, ok := seen[key]; ok {
			return nil, &ValidationError{Row: i + 1, Column: ColEmployeeEmail, Value: p.EmployeeEmail, Err: ErrDuplicateKey}
		}
		seen[key] = struct{}{}
		pairings[i] = p
	}
	return pairings, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return f, err
}

// decodeTable reads a CSV table with a header row and returns, for every
// data row, the trimmed values of the required columns in order. Extra
// columns are ignored and short rows read as empty values.
func decodeTable(r io.Reader, required []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ValidationError{Err: ErrNoRows}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := pos[name]; !ok {
			pos[name] = i
		}
	}
	cols := make([]int, len(required))
	for i, name := range required {
		p, ok := pos[name]
		if !ok {
			return nil, &ValidationError{Column: name, Err: ErrMissingColumn}
		}
		cols[i] = p
	}

	var rows [][]string
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		row := make([]string, len(cols))
		for i, p := range cols {
			if p < len(rec) {
				row[i] = strings.TrimSpace(rec[p])
			}
			if row[i] == "" {
				return nil, &ValidationError{Row: n, Column: required[i], Err: ErrEmptyValue}
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &ValidationError{Err: ErrNoRows}
	}
	return rows, nil
}
