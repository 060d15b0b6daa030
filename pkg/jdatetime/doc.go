// Package jdatetime provides Jalali Date and DateTime values on top of
// package jalali.
//
// Values are immutable. Derived data (weekday, hash, the broken-down form
// used for formatting) is computed on first use and memoised, so a value
// may be read from several goroutines once constructed. Compare values with
// their Equal methods; the == operator compares cache pointers.
//
// A DateTime without a TZInfo is naive. Naive and aware values cannot be
// compared or subtracted; doing so returns an error matching
// jalali.ErrNaiveAware.
package jdatetime
