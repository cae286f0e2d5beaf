// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export saves columns, tables and whole sites as CSV files. NULL
// is written as an empty field and matrices as their stored text.
package export
