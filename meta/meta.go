// meta/meta.go
package meta

// BOARD_SIZE is the standard grid dimension.
const BOARD_SIZE = 10

// MAX_PLACEMENT_ATTEMPTS bounds the random tries per ship when laying out a fleet.
const MAX_PLACEMENT_ATTEMPTS = 100

// MAX_FLEET_ROUNDS bounds how many times a whole fleet layout is restarted.
const MAX_FLEET_ROUNDS = 100

// SAMPLES is the default Monte-Carlo sample count per ship length.
const SAMPLES = 2000

// HIT_BOOST multiplies placements through unresolved hits by 1+HIT_BOOST per hit.
const HIT_BOOST = 4.0

// ADJACENCY_BONUS is added to covered cells next to an unresolved hit.
const ADJACENCY_BONUS = 1.0

// GAMES is the default number of games per strategy in an experiment.
const GAMES = 100

// GO_ROUTINES defines the number of games played in parallel.
const GO_ROUTINES = 8
