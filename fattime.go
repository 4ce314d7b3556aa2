// Package fattime decodes the packed 16-bit date and time stamps stored in FAT
// directory entries.
//
// Every FAT directory entry carries its timestamps as two kinds of 16-bit
// words, one packing a calendar date relative to the MS-DOS epoch of
// 1980-01-01 and one packing a wall-clock time with two-second granularity.
// The layouts below are taken directly from Microsoft's FAT documentation
// ("FAT: General Overview of On-Disk Format"); bit 0 is the LSB of the word.
//
// Date word:
//
//	Bits 0-4:  Day of month, valid value range 1-31 inclusive.
//	Bits 5-8:  Month of year, 1 = January, valid value range 1-12 inclusive.
//	Bits 9-15: Count of years from 1980, valid value range 0-127 inclusive
//	           (1980-2107).
//
// Time word:
//
//	Bits 0-4:   2-second count, valid value range 0-29 inclusive (0-58 seconds).
//	Bits 5-10:  Minutes, valid value range 0-59 inclusive.
//	Bits 11-15: Hours, valid value range 0-23 inclusive.
//
// The stamps are naive local time; FAT attaches no timezone to them. This
// package never picks one either -- callers combining a decoded value into a
// time.Time supply the location themselves.
//
// On disk the words are little-endian. Both decoders take an already-assembled
// host value; ReadDirentTimes handles the byte-order conversion for callers
// working from raw directory entries.
package fattime

import (
	"fmt"
	"time"
)

// epochYear is the MS-DOS epoch. A date word's year field counts up from here.
const epochYear = 1980

// Time is a wall-clock time decoded from a FAT time word. Second is always
// even and at most 58 because the on-disk field counts two-second units.
type Time struct {
	Hour   int
	Minute int
	Second int
}

// Date is a calendar date decoded from a FAT date word. Year is always within
// 1980-2107; the 7-bit on-disk field cannot encode anything else.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DecodeTime unpacks a 16-bit FAT time word. It returns ok == false if any
// sub-field is out of its valid range; no partial value is produced.
//
// The zero word decodes to midnight. FAT reserves a zero *date*, not a zero
// time -- some utilities never write a time at all, and 00:00:00 is a
// perfectly valid instant. Callers wanting to treat zero as "not set" must do
// so themselves.
func DecodeTime(word uint16) (Time, bool) {
	hours := int(word >> 11 & 0x1F)
	if hours > 23 {
		return Time{}, false
	}
	minutes := int(word >> 5 & 0x3F)
	if minutes > 59 {
		return Time{}, false
	}
	twoSec := int(word & 0x1F)
	if twoSec > 29 {
		return Time{}, false
	}

	decoded := Time{Hour: hours, Minute: minutes, Second: twoSec * 2}
	checkClock(decoded)
	return decoded, true
}

// DecodeDate unpacks a 16-bit FAT date word. It returns ok == false if the
// word is zero, if the month or day field is out of range, or if the day does
// not exist in the encoded month and year (e.g. February 30th, or February
// 29th outside a leap year).
func DecodeDate(word uint16) (Date, bool) {
	// A zero date is a reserved field, typically an entry whose creation or
	// access stamps were never written.
	if word == 0 {
		return Date{}, false
	}

	year := epochYear + int(word>>9&0x7F)
	month := time.Month(word >> 5 & 0x0F)
	if month < time.January || month > time.December {
		return Date{}, false
	}
	day := int(word & 0x1F)
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, false
	}

	decoded := Date{Year: year, Month: month, Day: day}
	checkCalendar(decoded)
	return decoded, true
}

// Combine merges a decoded date and time into a single time.Time in the given
// location. FAT stamps carry no timezone, so the caller decides how to
// interpret them; tools usually pick time.Local or time.UTC.
func Combine(d Date, t Time, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// IsLeapYear reports whether year is a Gregorian leap year. Note that the
// encodable range 1980-2107 contains 2100, which is divisible by 4 but is not
// a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthLengths = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year int, month time.Month) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return monthLengths[month-1]
}

// checkClock asserts that the standard library's calendar agrees with a value
// that already passed the decoder's range checks. A failure here is a bug in
// this package, never bad input, so it aborts instead of reporting "invalid".
func checkClock(t Time) {
	norm := time.Date(1, time.January, 1, t.Hour, t.Minute, t.Second, 0, time.UTC)
	if norm.Hour() != t.Hour || norm.Minute() != t.Minute || norm.Second() != t.Second {
		panic(fmt.Sprintf(
			"fattime: decoded impossible time %02d:%02d:%02d",
			t.Hour, t.Minute, t.Second))
	}
}

// checkCalendar is the date counterpart of checkClock. time.Date normalizes
// out-of-range components (February 30th becomes March 1st or 2nd), so any
// drift between the constructed value and the decoded fields means the
// decoder's own month-length validation is broken.
func checkCalendar(d Date) {
	norm := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if norm.Year() != d.Year || norm.Month() != d.Month || norm.Day() != d.Day {
		panic(fmt.Sprintf(
			"fattime: decoded impossible date %04d-%02d-%02d",
			d.Year, d.Month, d.Day))
	}
}
