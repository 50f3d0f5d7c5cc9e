package team

// DefaultRating is the strength given to a club when none is configured.
const DefaultRating = 1500

// Team represents a club competing in the league. It is a value type and
// is never mutated once the league is built.
type Team struct {
	ID     int
	Name   string
	Rating float64
}

// String returns the club name.
func (t Team) String() string {
	return t.Name
}

// Key returns the stable identifier used wherever teams index a map.
func (t Team) Key() int {
	return t.ID
}
