// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package roster reads participant and assignment tables from CSV files
// and writes assignment tables back.
package roster

import (
	"errors"
	"fmt"
)

const (
	ColEmployeeName  = "Employee_Name"
	ColEmployeeEmail = "Employee_EmailID"
	ColChildName     = "Secret_Child_Name"
	ColChildEmail    = "Secret_Child_EmailID"
)

var (
	employeeColumns = []string{ColEmployeeName, ColEmployeeEmail}
	pairingColumns  = []string{ColEmployeeName, ColEmployeeEmail, ColChildName, ColChildEmail}
)

type Employee struct {
	Name  string
	Email string
}

// Pairing is one row of an assignment table: the employee buys a gift
// for the secret child. Prior-period inputs and results share this shape.
type Pairing struct {
	EmployeeName  string
	EmployeeEmail string
	ChildName     string
	ChildEmail    string
}

var (
	ErrNotFound      = errors.New("file not found")
	ErrMalformed     = errors.New("malformed csv")
	ErrNoRows        = errors.New("no rows")
	ErrMissingColumn = errors.New("missing column")
	ErrEmptyValue    = errors.New("empty value")
	ErrDuplicateKey  = errors.New("duplicate identifier")
)

// ValidationError rejects a whole table because of one offending row.
// Row counts data rows from 1; it is 0 for problems with the header or
// the table as a whole.
type ValidationError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ValidationError) Error() string {
	var msg string
	switch {
	case e.Column == "":
		msg = e.Err.Error()
	case e.Value != "":
		msg = fmt.Sprintf("%v %q in %s", e.Err, e.Value, e.Column)
	default:
		msg = fmt.Sprintf("%v in %s", e.Err, e.Column)
	}
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
