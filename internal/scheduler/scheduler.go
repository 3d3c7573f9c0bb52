package scheduler

import (
	"context"
	"sort"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

// Reporter receives per-generation progress and the final outcome of a run.
// Delivery is fire-and-forget: implementations must not block the search,
// and a delivery failure never affects the computation.
type Reporter interface {
	ReportProgress(event domain.ProgressEvent)
	ReportOutcome(notification domain.Notification)
}

// Run executes the genetic search and returns the best chromosome found.
// It never fails on "no solution": a best-effort chromosome always comes
// back and the caller decides what its fitness is worth. The context is
// polled once per generation, so an abandoned run stops cooperatively.
func (s *Scheduler) Run(ctx context.Context) *Chromosome {
	pop := make([]*Chromosome, s.parameters.PopulationSize)
	for i := range pop {
		pop[i] = s.randomInitChromosome()
		s.calcFitness(pop[i])
	}

	best := pop[0].clone()

	for generation := 0; generation < int(s.parameters.MaxGenerations); generation++ {
		// track the best chromosome ever seen; a deep copy is required
		// because breeding reuses the population's genes
		for _, ch := range pop {
			if ch.fitness > best.fitness {
				best = ch.clone()
			}
		}

		if s.reporter != nil {
			s.reporter.ReportProgress(domain.ProgressEvent{
				Generation: generation,
				Fitness:    best.fitness,
			})
		}

		if best.fitness >= s.parameters.FitnessThreshold {
			break
		}

		select {
		case <-ctx.Done():
			return best
		default:
		}

		// elitism: the fittest chromosomes survive unmodified
		sort.Slice(pop, func(i, j int) bool {
			return pop[i].fitness > pop[j].fitness
		})

		newPop := make([]*Chromosome, 0, s.parameters.PopulationSize)
		for i := 0; i < int(s.parameters.EliteCount) && i < len(pop); i++ {
			newPop = append(newPop, pop[i].clone())
		}

		for len(newPop) < int(s.parameters.PopulationSize) {
			p1 := s.selectByRoulette(pop).clone()
			p2 := s.selectByRoulette(pop).clone()

			if s.rng.Float64() < s.parameters.CrossoverRate {
				s.singlePointCrossover(p1, p2)
			}

			s.mutate(p1)
			s.mutate(p2)

			newPop = append(newPop, p1)
			if len(newPop) < int(s.parameters.PopulationSize) {
				newPop = append(newPop, p2)
			}
		}

		pop = newPop
		for _, ch := range pop {
			s.calcFitness(ch)
		}
	}

	return best
}
