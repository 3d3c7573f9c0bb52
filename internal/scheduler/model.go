package scheduler

// Employee: one (worker, role) pairing eligible for assignment. A worker
// holding several roles appears once per role they could be scheduled under.
type Employee struct {
	ID   int64
	Code string
	Role string
}

// Requirement: a (role, quantity) need attached to one slot.
type Requirement struct {
	Role     string
	Quantity int32
}

// Gen: one shift-slot-to-fill on one day, with its requirements and the
// employees currently assigned to it.
type Gen struct {
	shiftID      int64
	day          int32 // day of year
	startTime    string
	requirements []Requirement
	assigned     []Employee
}

// Chromosome: one full candidate schedule.
type Chromosome struct {
	genes   []*Gen
	fitness float64
}

// Fitness returns the normalized quality score in [0,1].
func (ch *Chromosome) Fitness() float64 {
	return ch.fitness
}

// genetic algorithm parameters
type Parameters struct {
	PopulationSize   int32
	MaxGenerations   int32
	CrossoverRate    float64
	MutationRate     float64
	EliteCount       int32
	ConflictPenalty  float64 // weight of the same-day double-booking penalty
	FitnessThreshold float64 // stop early once the best fitness reaches this
}
