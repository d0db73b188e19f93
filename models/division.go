package models

// Division is one of the two fixed league tiers a team and its
// tournaments belong to.
type Division string

const (
	DivisionFirst  Division = "first"
	DivisionSecond Division = "second"
)

func (d Division) Valid() bool {
	return d == DivisionFirst || d == DivisionSecond
}
