// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"fmt"
	"strconv"

	"github.com/danielhkuo/coastcamdb/schema"
)

// Key identifies one row, either by string id or by seq.
type Key struct {
	kind schema.KeyKind
	id   string
	seq  int64
}

func IDKey(id string) Key { return Key{kind: schema.KeyID, id: id} }

func SeqKey(seq int64) Key { return Key{kind: schema.KeySeq, seq: seq} }

// ParseKey reads s as a key of the given kind.
func ParseKey(kind schema.KeyKind, s string) (Key, error) {
	if kind == schema.KeyID {
		return IDKey(s), nil
	}
	seq, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("invalid seq %q: %w", s, err)
	}
	return SeqKey(seq), nil
}

func (k Key) Kind() schema.KeyKind { return k.kind }

// Column is the column the key matches against: id or seq.
func (k Key) Column() string { return k.kind.Column() }

// Value is the key as a query argument.
func (k Key) Value() any {
	if k.kind == schema.KeySeq {
		return k.seq
	}
	return k.id
}

func (k Key) ID() string { return k.id }

func (k Key) Seq() int64 { return k.seq }

func (k Key) String() string {
	if k.kind == schema.KeySeq {
		return "seq " + strconv.FormatInt(k.seq, 10)
	}
	return fmt.Sprintf("id %q", k.id)
}

func (k Key) MarshalText() ([]byte, error) {
	if k.kind == schema.KeySeq {
		return []byte(strconv.FormatInt(k.seq, 10)), nil
	}
	return []byte(k.id), nil
}

func (k Key) notFound(table string) error {
	if k.kind == schema.KeySeq {
		return &NoMatchingSeqError{Table: table, Seq: k.seq}
	}
	return &NoMatchingIDError{Table: table, ID: k.id}
}
