package fattime

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
)

// DirentSize is the size of a FAT directory entry in bytes.
const DirentSize = 32

// Byte offsets of the packed timestamp words within a directory entry. The
// creation-tenths byte at offset 13 (100 ms resolution) is deliberately not
// read; this package only deals in the 16-bit words.
const (
	createdTimeOffset      = 14
	createdDateOffset      = 16
	lastAccessedDateOffset = 18
	lastModifiedTimeOffset = 22
	lastModifiedDateOffset = 24
)

// DirentTimes holds the raw timestamp words of a single FAT directory entry.
// The words are kept packed; use the accessor methods or DecodeTime/DecodeDate
// directly to get semantic values.
//
// FAT stores no time for the last-access stamp, only a date.
type DirentTimes struct {
	CreatedTime      uint16
	CreatedDate      uint16
	LastAccessedDate uint16
	LastModifiedTime uint16
	LastModifiedDate uint16
}

// ReadDirentTimes consumes one 32-byte directory entry from r and extracts its
// packed timestamp words. FAT stores all multi-byte integers little-endian;
// the returned words are host values ready for DecodeTime and DecodeDate.
//
// The caller is responsible for positioning r at the start of an entry. The
// full 32 bytes are consumed even though only the timestamp fields are used.
func ReadDirentTimes(r io.Reader) (DirentTimes, error) {
	var entry [DirentSize]byte
	if _, err := io.ReadFull(r, entry[:]); err != nil {
		return DirentTimes{}, fmt.Errorf("reading directory entry: %w", err)
	}

	return DirentTimes{
		CreatedTime:      binary.LittleEndian.Uint16(entry[createdTimeOffset:]),
		CreatedDate:      binary.LittleEndian.Uint16(entry[createdDateOffset:]),
		LastAccessedDate: binary.LittleEndian.Uint16(entry[lastAccessedDateOffset:]),
		LastModifiedTime: binary.LittleEndian.Uint16(entry[lastModifiedTimeOffset:]),
		LastModifiedDate: binary.LittleEndian.Uint16(entry[lastModifiedDateOffset:]),
	}, nil
}

// Created returns the creation timestamp in the given location, or ok == false
// if either word is not a valid encoding. A zero creation date means the
// writing tool never recorded one.
func (dt DirentTimes) Created(loc *time.Location) (time.Time, bool) {
	return resolve(dt.CreatedDate, dt.CreatedTime, loc)
}

// LastModified returns the last-modification timestamp in the given location,
// or ok == false if either word is not a valid encoding.
func (dt DirentTimes) LastModified(loc *time.Location) (time.Time, bool) {
	return resolve(dt.LastModifiedDate, dt.LastModifiedTime, loc)
}

// LastAccessed returns the last-access date at midnight in the given location,
// or ok == false if the word is not a valid encoding.
func (dt DirentTimes) LastAccessed(loc *time.Location) (time.Time, bool) {
	d, ok := DecodeDate(dt.LastAccessedDate)
	if !ok {
		return time.Time{}, false
	}
	return Combine(d, Time{}, loc), true
}

func resolve(dateWord, timeWord uint16, loc *time.Location) (time.Time, bool) {
	d, ok := DecodeDate(dateWord)
	if !ok {
		return time.Time{}, false
	}
	t, ok := DecodeTime(timeWord)
	if !ok {
		return time.Time{}, false
	}
	return Combine(d, t, loc), true
}

// Validate reports every timestamp word that is not a valid encoding, one
// error per bad field. A nil result means all five words decode. Zero dates
// are reported too; callers that consider an unwritten stamp acceptable
// should check the individual accessors instead.
func (dt DirentTimes) Validate() error {
	var result *multierror.Error

	if _, ok := DecodeTime(dt.CreatedTime); !ok {
		result = multierror.Append(result, fmt.Errorf(
			"created time %#04x is not a valid FAT time", dt.CreatedTime))
	}
	if _, ok := DecodeDate(dt.CreatedDate); !ok {
		result = multierror.Append(result, fmt.Errorf(
			"created date %#04x is not a valid FAT date", dt.CreatedDate))
	}
	if _, ok := DecodeDate(dt.LastAccessedDate); !ok {
		result = multierror.Append(result, fmt.Errorf(
			"last-accessed date %#04x is not a valid FAT date", dt.LastAccessedDate))
	}
	if _, ok := DecodeTime(dt.LastModifiedTime); !ok {
		result = multierror.Append(result, fmt.Errorf(
			"last-modified time %#04x is not a valid FAT time", dt.LastModifiedTime))
	}
	if _, ok := DecodeDate(dt.LastModifiedDate); !ok {
		result = multierror.Append(result, fmt.Errorf(
			"last-modified date %#04x is not a valid FAT date", dt.LastModifiedDate))
	}

	return result.ErrorOrNil()
}
