package jalali

// Leap rule constants of the 2820-year grand cycle.
const (
	LeapBase       = 475  // first year of the current grand period
	LeapPeriod     = 2820 // years in a grand period
	LeapsInPeriod  = 683  // leap years in a grand period
	DaysInPeriod   = LeapPeriod*365 + LeapsInPeriod
	cycleLength    = 128
	leapsInCycle   = 31
	lastCycleStart = 2688
	// leap years in the grand period before the last, 132 year long, cycle
	leapsBeforeLastCycle = lastCycleStart / cycleLength * leapsInCycle
)

// cycle partitions, 29 + 33 + 33 + 33 (37 in the last cycle)
var cyclePartitions = [...]int{0, 29, 62, 95}

var monthLengths = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

// Epoch correspondence: 1348-10-11 is day 0 (1970-01-01, a Panj-Shanbeh).
const (
	EpochYear = 1348
	EpochYday = 286
	EpochWday = 5
)

var epochOffset = daysBeforeYear(EpochYear) + EpochYday

// IsLeap reports whether year has 366 days.
func IsLeap(year int) bool {
	pr := floorMod(year-LeapBase, LeapPeriod)
	if pr > lastCycleStart {
		pr -= lastCycleStart
	} else {
		pr %= cycleLength
	}
	for i := len(cyclePartitions) - 1; i >= 0; i-- {
		if pr >= cyclePartitions[i] {
			pr -= cyclePartitions[i]
			break
		}
	}
	return pr != 0 && pr%4 == 0
}

// YearDays returns the number of days in year.
func YearDays(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// MonthDays returns the length of the zero-based month mon, or 0 when mon
// is not in 0..11.
func MonthDays(year, mon int) int {
	if mon < 0 || mon > 11 {
		return 0
	}
	if mon == 11 && IsLeap(year) {
		return 30
	}
	return monthLengths[mon]
}

// YearInfo describes where a year sits in its grand leap period.
type YearInfo struct {
	Year int  `json:"year"`
	Leap bool `json:"leap"`
	// Passed is the position of Year in its grand period; Remaining counts
	// the years after it.
	Passed    int `json:"passed"`
	Remaining int `json:"remaining"`
	// PassedLeaps counts leap years of the period up to and including Year.
	PassedLeaps    int `json:"passed_leaps"`
	RemainingLeaps int `json:"remaining_leaps"`
	// AbsoluteLeaps counts leap years between AP 475 and Year inclusive,
	// negative for years before AP 475.
	AbsoluteLeaps int `json:"absolute_leaps"`
}

// GetYearInfo returns the leap cycle information of year.
func GetYearInfo(year int) YearInfo {
	info := YearInfo{Year: year, Leap: IsLeap(year)}

	if year >= LeapBase {
		c := leapsBefore(year + 1)
		info.AbsoluteLeaps = c
		info.PassedLeaps = c % LeapsInPeriod
	} else {
		c := -leapsBefore(year)
		info.AbsoluteLeaps = -c
		info.PassedLeaps = LeapsInPeriod - c%LeapsInPeriod
	}
	info.RemainingLeaps = LeapsInPeriod - info.PassedLeaps

	info.Passed = floorMod(year-LeapBase, LeapPeriod)
	info.Remaining = LeapPeriod - info.Passed - 1
	return info
}

// leapsBefore counts leap years in [LeapBase, year), negated for years
// before LeapBase.
func leapsBefore(year int) int {
	off := year - LeapBase
	return floorDiv(off, LeapPeriod)*LeapsInPeriod + periodLeapsBefore(floorMod(off, LeapPeriod))
}

// periodLeapsBefore counts leap years before position pos of a grand period.
func periodLeapsBefore(pos int) int {
	if pos <= lastCycleStart {
		return pos/cycleLength*leapsInCycle + cycleLeapsBefore(pos%cycleLength)
	}
	return leapsBeforeLastCycle + cycleLeapsBefore(pos-lastCycleStart)
}

// cycleLeapsBefore counts leap years before position pos of a cycle.
func cycleLeapsBefore(pos int) int {
	n := 0
	for i, start := range cyclePartitions {
		if pos <= start {
			break
		}
		end := pos
		if i+1 < len(cyclePartitions) && cyclePartitions[i+1] < end {
			end = cyclePartitions[i+1]
		}
		n += (end - start - 1) / 4
	}
	return n
}

// daysBeforeYear counts days from 475-01-01 to the first day of year.
func daysBeforeYear(year int) int {
	return 365*(year-LeapBase) + leapsBefore(year)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func floorDivMod(a, b int) (int, int) {
	return floorDiv(a, b), floorMod(a, b)
}
