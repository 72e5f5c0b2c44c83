// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gnomon

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/meditrace/fault"
)

// description of binary record
const (
	secondsStart     = 0
	secondsSize      = 8
	nanoSecondsStart = secondsStart + secondsSize
	nanoSecondsSize  = 4

	// TotalSize - number of bytes in a binary cursor
	TotalSize = secondsSize + nanoSecondsSize
)

// Cursor - effectively a limited timestamp
//
// This works like erlang:now() and will advance into future if
// called faster than once per nanosecond continuously.
type Cursor struct {
	seconds     int64
	nanoSeconds int32 // 0 .. 999,999,999
}

// Clock - hands out strictly increasing cursors
type Clock struct {
	sync.Mutex
	current Cursor
	now     func() time.Time
}

// NewClock - a clock reading the system time
func NewClock() *Clock {
	return &Clock{
		now: time.Now,
	}
}

// NewClockWithSource - a clock reading from a supplied time source
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{
		now: now,
	}
}

// Next - get a cursor value that is later than any previous one
func (c *Clock) Next() Cursor {

	now := c.now().UTC()
	cursor := Cursor{
		seconds:     now.Unix(),
		nanoSeconds: int32(now.Nanosecond()),
	}

	c.Lock()
	defer c.Unlock()

	if !c.current.Before(cursor) {
		cursor = c.current
		cursor.advance()
	}
	c.current = cursor
	return cursor
}

// Restore - ensure the clock never hands out a value at or before
// the given cursor, used after replaying stored events
func (c *Clock) Restore(last Cursor) {
	c.Lock()
	defer c.Unlock()

	if c.current.Before(last) {
		c.current = last
	}
}

// FromTime - convert a time to a cursor
func FromTime(t time.Time) Cursor {
	t = t.UTC()
	return Cursor{
		seconds:     t.Unix(),
		nanoSeconds: int32(t.Nanosecond()),
	}
}

// Time - convert a cursor to a UTC time
func (cursor Cursor) Time() time.Time {
	return time.Unix(cursor.seconds, int64(cursor.nanoSeconds)).UTC()
}

// Before - true if cursor is strictly earlier than other
func (cursor Cursor) Before(other Cursor) bool {
	if cursor.seconds != other.seconds {
		return cursor.seconds < other.seconds
	}
	return cursor.nanoSeconds < other.nanoSeconds
}

// advance a cursor by one LSB to be the next possible position after
// its current value
func (cursor *Cursor) advance() {
	cursor.nanoSeconds += 1
	if cursor.nanoSeconds > 999999999 {
		cursor.nanoSeconds = 0
		cursor.seconds += 1
	}
}

// MarshalBinary - big-endian so database keys sort in ascending time order
func (cursor Cursor) MarshalBinary() ([]byte, error) {
	b := make([]byte, TotalSize)
	binary.BigEndian.PutUint64(b[secondsStart:], uint64(cursor.seconds))
	binary.BigEndian.PutUint32(b[nanoSecondsStart:], uint32(cursor.nanoSeconds))
	return b, nil
}

// UnmarshalBinary - convert from binary
func (cursor *Cursor) UnmarshalBinary(s []byte) error {
	if TotalSize != len(s) {
		return fault.RecordTruncated
	}
	cursor.seconds = int64(binary.BigEndian.Uint64(s[secondsStart:]))
	cursor.nanoSeconds = int32(binary.BigEndian.Uint32(s[nanoSecondsStart:]))
	if cursor.nanoSeconds < 0 || cursor.nanoSeconds > 999999999 {
		return fault.RecordTruncated
	}
	return nil
}
