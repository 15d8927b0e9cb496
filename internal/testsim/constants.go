package testsim

// HTTP status code constants.
const (
	StatusOK      = 200
	StatusCreated = 201
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
)

// Score scale constants.
const (
	ScoreMin  = 300
	ScoreMax  = 850
	FactorMin = 0
	FactorMax = 100
)
