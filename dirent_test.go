package fattime_test

import (
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/diskimage-tools/fattime"
)

// buildDirent synthesizes one 32-byte directory entry with the given packed
// timestamp words. The name, attribute, and creation-tenths fields are filled
// with plausible junk to make sure nothing outside the timestamp offsets is
// ever interpreted.
func buildDirent(createdTime, createdDate, accessedDate, modifiedTime, modifiedDate uint16) []byte {
	entry := make([]byte, fattime.DirentSize)
	copy(entry, "README  TXT")
	entry[11] = 0x20 // archive attribute
	entry[13] = 0xC7 // creation tenths, must be ignored
	binary.LittleEndian.PutUint16(entry[14:], createdTime)
	binary.LittleEndian.PutUint16(entry[16:], createdDate)
	binary.LittleEndian.PutUint16(entry[18:], accessedDate)
	binary.LittleEndian.PutUint16(entry[22:], modifiedTime)
	binary.LittleEndian.PutUint16(entry[24:], modifiedDate)
	return entry
}

func TestReadDirentTimes(t *testing.T) {
	image := buildDirent(0xBF7D, 0xBF7D, 0x0021, 0x477D, 0x0221)
	stream := bytesextra.NewReadWriteSeeker(image)

	stamps, err := fattime.ReadDirentTimes(stream)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xBF7D), stamps.CreatedTime)
	assert.Equal(t, uint16(0xBF7D), stamps.CreatedDate)
	assert.Equal(t, uint16(0x0021), stamps.LastAccessedDate)
	assert.Equal(t, uint16(0x477D), stamps.LastModifiedTime)
	assert.Equal(t, uint16(0x0221), stamps.LastModifiedDate)

	created, ok := stamps.Created(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2075, time.November, 29, 23, 59, 58, 0, time.UTC), created)

	accessed, ok := stamps.LastAccessed(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC), accessed)

	modified, ok := stamps.LastModified(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(1981, time.January, 1, 8, 59, 58, 0, time.UTC), modified)
}

func TestReadDirentTimesConsumesWholeEntry(t *testing.T) {
	// Two consecutive entries; reading the first must leave the stream at the
	// start of the second.
	image := append(
		buildDirent(0x0000, 0x0021, 0x0021, 0x0000, 0x0021),
		buildDirent(0x477D, 0x0221, 0x0221, 0x477D, 0x0221)...,
	)
	stream := bytesextra.NewReadWriteSeeker(image)

	first, err := fattime.ReadDirentTimes(stream)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0021), first.CreatedDate)

	second, err := fattime.ReadDirentTimes(stream)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0221), second.CreatedDate)
	assert.Equal(t, uint16(0x477D), second.CreatedTime)
}

func TestReadDirentTimesShortRead(t *testing.T) {
	stream := bytesextra.NewReadWriteSeeker(make([]byte, 10))

	_, err := fattime.ReadDirentTimes(stream)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDirentTimesZeroDateMeansNotSet(t *testing.T) {
	stamps := fattime.DirentTimes{
		CreatedTime:      0x0000,
		CreatedDate:      0x0000,
		LastAccessedDate: 0x0000,
		LastModifiedTime: 0x477D,
		LastModifiedDate: 0x0221,
	}

	_, ok := stamps.Created(time.UTC)
	assert.False(t, ok)

	_, ok = stamps.LastAccessed(time.UTC)
	assert.False(t, ok)

	modified, ok := stamps.LastModified(time.UTC)
	require.True(t, ok)
	assert.Equal(t, 1981, modified.Year())
}

func TestDirentTimesValidate(t *testing.T) {
	stamps := fattime.DirentTimes{
		CreatedTime:      0xBF7E, // two-second count of 30
		CreatedDate:      0x0021,
		LastAccessedDate: 0x0000, // reserved zero date
		LastModifiedTime: 0x477D,
		LastModifiedDate: 0x01A1, // month 13
	}

	err := stamps.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)

	clean := fattime.DirentTimes{
		CreatedTime:      0x0000, // midnight, valid
		CreatedDate:      0x0021,
		LastAccessedDate: 0x0021,
		LastModifiedTime: 0xBF7D,
		LastModifiedDate: 0xFF9F,
	}
	assert.NoError(t, clean.Validate())
}
