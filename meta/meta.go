// meta/meta.go
package meta

// GAMES_PER_MATCHUP defines the number of games played per experiment matchup.
const GAMES_PER_MATCHUP = 10

// CONCURRENCY defines the number of experiment games played at once.
const CONCURRENCY = 4

// RANDOM_PLIES defines the random opening plies played before agents take over.
const RANDOM_PLIES = 4

// OUTPUT_DIR defines where experiment results are written.
const OUTPUT_DIR = "experiments"
