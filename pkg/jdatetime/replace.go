package jdatetime

// Field changes one field in Replace.
type Field func(*fields)

type fields struct {
	year, month, day                  int
	hour, minute, second, microsecond int
	tz                                TZInfo
	set                               fieldMask
}

type fieldMask uint8

const (
	fieldHour fieldMask = 1 << iota
	fieldMinute
	fieldSecond
	fieldMicrosecond
	fieldTZ

	timeFields = fieldHour | fieldMinute | fieldSecond | fieldMicrosecond | fieldTZ
)

func WithYear(year int) Field   { return func(f *fields) { f.year = year } }
func WithMonth(month int) Field { return func(f *fields) { f.month = month } }
func WithDay(day int) Field     { return func(f *fields) { f.day = day } }

func WithHour(hour int) Field {
	return func(f *fields) { f.hour = hour; f.set |= fieldHour }
}

func WithMinute(minute int) Field {
	return func(f *fields) { f.minute = minute; f.set |= fieldMinute }
}

func WithSecond(second int) Field {
	return func(f *fields) { f.second = second; f.set |= fieldSecond }
}

func WithMicrosecond(us int) Field {
	return func(f *fields) { f.microsecond = us; f.set |= fieldMicrosecond }
}

// WithTZ sets the zone; nil makes the value naive. The wall clock fields
// are kept.
func WithTZ(tz TZInfo) Field {
	return func(f *fields) { f.tz = tz; f.set |= fieldTZ }
}
