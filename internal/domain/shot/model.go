package shot

// Period is the half a shot happened in, decoded from the high byte of goalTime.
type Period int

const (
	PeriodFirstHalf Period = iota
	PeriodSecondHalf
	PeriodExtraFirstHalf
	PeriodExtraSecondHalf
	PeriodShootout
)

const (
	periodShift   = 24
	periodSecMask = 1<<periodShift - 1
)

var periodOffsetMinutes = map[Period]int{
	PeriodFirstHalf:       0,
	PeriodSecondHalf:      45,
	PeriodExtraFirstHalf:  90,
	PeriodExtraSecondHalf: 105,
	PeriodShootout:        120,
}

// Detail is one decoded shot event.
type Detail struct {
	MatchID    int64
	OUID       string
	SpID       int64
	GoalTime   int64
	Period     Period
	Minute     int
	Second     int
	X          float64
	Y          float64
	Type       int
	Result     int
	AssistSpID int64
	HitPost    bool
	InPenalty  bool
}

// DecodeGoalTime splits the provider goalTime into period and match clock.
// The low 24 bits are seconds elapsed inside the period.
func DecodeGoalTime(goalTime int64) (Period, int, int) {
	if goalTime < 0 {
		return PeriodFirstHalf, 0, 0
	}

	period := Period(goalTime >> periodShift)
	elapsed := int(goalTime & periodSecMask)

	offset, ok := periodOffsetMinutes[period]
	if !ok {
		period = PeriodShootout
		offset = periodOffsetMinutes[PeriodShootout]
	}

	return period, offset + elapsed/60, elapsed % 60
}
