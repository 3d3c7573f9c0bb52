package scheduler

// randomInitChromosome builds one candidate schedule by randomly filling
// every slot's requirements from the role-partitioned pool. The same
// employee is never drawn twice within one slot; same-day double-bookings
// across slots are allowed here and penalized by the fitness function.
func (s *Scheduler) randomInitChromosome() *Chromosome {
	genes := make([]*Gen, len(s.slots))

	for i, slot := range s.slots {
		gene := &Gen{
			shiftID:      slot.shiftID,
			day:          slot.day,
			startTime:    slot.startTime,
			requirements: slot.requirements,
		}
		gene.assigned = s.drawAssignment(gene)
		genes[i] = gene
	}

	return &Chromosome{genes: genes}
}

// drawAssignment randomly selects enough eligible employees per required
// role to meet the slot's requirements, without replacement within the slot.
func (s *Scheduler) drawAssignment(gene *Gen) []Employee {
	assigned := make([]Employee, 0)
	usedIDs := make(map[int64]bool)

	for _, requirement := range gene.requirements {
		candidates := make([]Employee, 0, len(s.pool[requirement.Role]))
		for _, employee := range s.pool[requirement.Role] {
			if !usedIDs[employee.ID] {
				candidates = append(candidates, employee)
			}
		}

		s.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})

		chosen := min(int(requirement.Quantity), len(candidates))
		for _, employee := range candidates[:chosen] {
			assigned = append(assigned, employee)
			usedIDs[employee.ID] = true
		}
	}

	return assigned
}

/**
 * Fitness of a candidate schedule, normalized to [0,1]:
 *   fitness = coverage / (1 + ConflictPenalty * conflicts)
 * where:
 *   1. coverage is the fraction of required (slot, role, quantity) units
 *      actually filled,
 *   2. conflicts counts every assignment beyond the first of the same
 *      employee on the same day.
 * fitness is 1.0 only for a fully covered, conflict-free schedule and
 * strictly decreases with every missing unit and every double-booking.
 */
func (s *Scheduler) calcFitness(ch *Chromosome) {
	var totalUnits, coveredUnits int32
	dayAssignments := make(map[int64]map[int32]int32) // employeeID -> day -> assignment count

	for _, gene := range ch.genes {
		assignedPerRole := make(map[string]int32)
		for _, employee := range gene.assigned {
			assignedPerRole[employee.Role]++

			if _, exists := dayAssignments[employee.ID]; !exists {
				dayAssignments[employee.ID] = make(map[int32]int32)
			}
			dayAssignments[employee.ID][gene.day]++
		}

		for _, requirement := range gene.requirements {
			totalUnits += requirement.Quantity
			coveredUnits += min(requirement.Quantity, assignedPerRole[requirement.Role])
		}
	}

	coverage := 1.0
	if totalUnits > 0 {
		coverage = float64(coveredUnits) / float64(totalUnits)
	}

	conflicts := 0
	for _, days := range dayAssignments {
		for _, count := range days {
			if count > 1 {
				conflicts += int(count - 1)
			}
		}
	}

	ch.fitness = coverage / (1 + s.parameters.ConflictPenalty*float64(conflicts))
}

// roulette-wheel selection, biased toward higher fitness
func (s *Scheduler) selectByRoulette(pop []*Chromosome) *Chromosome {
	sumFit := 0.0
	for _, ch := range pop {
		sumFit += ch.fitness
	}

	if sumFit == 0 {
		return pop[s.rng.Intn(len(pop))]
	}

	pick := s.rng.Float64() * sumFit
	partial := 0.0

	for _, ch := range pop {
		partial += ch.fitness
		if partial >= pick {
			return ch
		}
	}

	// floating point rounding can leave partial just under pick
	return pop[len(pop)-1]
}

// single-point crossover: exchange the gene tails after a random position.
// Both chromosomes share the canonical slot ordering, so swapping by index
// keeps every child's slot sequence intact.
func (s *Scheduler) singlePointCrossover(ch1 *Chromosome, ch2 *Chromosome) {
	if len(ch1.genes) != len(ch2.genes) || len(ch1.genes) == 0 {
		return
	}

	point := s.rng.Intn(len(ch1.genes))
	for i := point; i < len(ch1.genes); i++ {
		ch1.genes[i], ch2.genes[i] = ch2.genes[i], ch1.genes[i]
	}
}

// mutate re-draws a slot's whole assignment with a small per-slot
// probability, to escape local optima.
func (s *Scheduler) mutate(ch *Chromosome) {
	for _, gene := range ch.genes {
		if s.rng.Float64() > s.parameters.MutationRate {
			continue
		}
		gene.assigned = s.drawAssignment(gene)
	}
}

// clone deep-copies a chromosome so later breeding cannot modify it.
func (ch *Chromosome) clone() *Chromosome {
	genes := make([]*Gen, len(ch.genes))
	for i, gene := range ch.genes {
		assigned := make([]Employee, len(gene.assigned))
		copy(assigned, gene.assigned)
		genes[i] = &Gen{
			shiftID:      gene.shiftID,
			day:          gene.day,
			startTime:    gene.startTime,
			requirements: gene.requirements,
			assigned:     assigned,
		}
	}
	return &Chromosome{genes: genes, fitness: ch.fitness}
}
