// Package jalali implements Jalali (Solar Hijri) calendar arithmetic.
//
// The package is built around BrokenTime, a plain broken-down date/time
// value. Kernel functions convert between month/day, day-of-year and
// epoch-day representations, Normalize carries out-of-range civil fields
// into canonical ranges, and Format/Parse implement the strftime-like
// directive codec with English and Farsi names.
//
// Day 0 of the epoch-day count is 1348-10-11 (Gregorian 1970-01-01).
// Leap years follow the 2820-year grand cycle rule anchored at AP 475.
package jalali
