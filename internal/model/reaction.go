package model

// Reaction distinguishes the two mutually exclusive reactions a user can
// place on a post or comment. A (user, target) pair holds at most one
// reaction row regardless of its kind.
type Reaction int8

const (
	ReactionLike    Reaction = 1
	ReactionDislike Reaction = 2
)

func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// Direction selects whether a counter mutator adds or removes exactly one.
type Direction int

const (
	DirectionSum    Direction = 1
	DirectionReduce Direction = -1
)

// Delta is the signed step applied to the counter column.
func (d Direction) Delta() int {
	return int(d)
}
