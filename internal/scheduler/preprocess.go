package scheduler

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/samber/lo"
)

type Scheduler struct {
	parameters *Parameters
	slots      []*Gen                // canonical slot order shared by every chromosome
	pool       map[string][]Employee // role name -> eligible employees
	reporter   Reporter
	rng        *rand.Rand
}

// New builds the optimizer input from the raw staffing requirements and the
// catalogs, and runs the feasibility pre-check. The requirements must already
// be restricted to employees with no approved absence in the requested span.
func New(parameters *Parameters, requirements []domain.ScheduleRequirement, predefinedShifts []*domain.PredefinedShift, roles []*domain.Role, employees []*domain.Employee, reporter Reporter) (*Scheduler, error) {
	s := &Scheduler{
		parameters: parameters,
		slots:      make([]*Gen, 0),
		reporter:   reporter,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	roleNames := make(map[int64]string, len(roles))
	for _, role := range roles {
		roleNames[role.ID] = role.Name
	}

	shiftStartTimes := make(map[int64]string, len(predefinedShifts))
	for _, shift := range predefinedShifts {
		shiftStartTimes[shift.ID] = shift.StartTime
	}

	// one pool entry per (worker, role) pair the worker holds
	pairs := lo.FlatMap(employees, func(e *domain.Employee, _ int) []Employee {
		pairEmployees := make([]Employee, 0, len(e.RoleIDs))
		for _, roleID := range e.RoleIDs {
			if name, exists := roleNames[roleID]; exists {
				pairEmployees = append(pairEmployees, Employee{ID: e.ID, Code: e.Code, Role: name})
			}
		}
		return pairEmployees
	})
	s.pool = lo.GroupBy(pairs, func(e Employee) string { return e.Role })

	// flatten the per-day requirements into the canonical slot list
	requiredTotals := make(map[string]int32)

	for _, requirement := range requirements {
		for _, shift := range requirement.Shifts {
			startTime, exists := shiftStartTimes[shift.PredefinedShiftID]
			if !exists {
				return nil, &UnknownReferenceError{Kind: "shift", ID: shift.PredefinedShiftID}
			}

			slotRequirements := make([]Requirement, 0, len(shift.Roles))
			for _, role := range shift.Roles {
				name, exists := roleNames[role.RoleID]
				if !exists {
					return nil, &UnknownReferenceError{Kind: "role", ID: role.RoleID}
				}
				slotRequirements = append(slotRequirements, Requirement{Role: name, Quantity: role.Quantity})
				requiredTotals[name] += role.Quantity
			}

			s.slots = append(s.slots, &Gen{
				shiftID:      shift.PredefinedShiftID,
				day:          int32(requirement.Date.YearDay()),
				startTime:    startTime,
				requirements: slotRequirements,
			})
		}
	}

	// canonical ordering: date ascending, then slot start time ascending
	// within a day, so positional crossover lines up across chromosomes
	sort.SliceStable(s.slots, func(i, j int) bool {
		if s.slots[i].day != s.slots[j].day {
			return s.slots[i].day < s.slots[j].day
		}
		return s.slots[i].startTime < s.slots[j].startTime
	})

	if err := s.checkFeasibility(requirements, requiredTotals); err != nil {
		return nil, err
	}

	return s, nil
}

/**
 * Feasibility pre-check: compare each role's required total over the whole
 * span against an estimated maximum fill capacity,
 *   capacity = available_employees * multiplier
 * where the multiplier models a 5-day working week:
 *   multiplier = days            if the span is shorter than 5 days
 *   multiplier = 5 * ceil(days/7) otherwise
 * Any role over capacity fails the request before a single generation runs.
 */
func (s *Scheduler) checkFeasibility(requirements []domain.ScheduleRequirement, requiredTotals map[string]int32) error {
	if len(requirements) == 0 {
		return nil
	}

	first := requirements[0].Date
	last := requirements[0].Date
	for _, requirement := range requirements {
		if requirement.Date.Before(first) {
			first = requirement.Date
		}
		if requirement.Date.After(last) {
			last = requirement.Date
		}
	}
	days := int32(last.Sub(first).Hours()/24) + 1

	multiplier := days
	if days >= 5 {
		multiplier = 5 * int32(math.Ceil(float64(days)/7))
	}

	// iterate the slots rather than the map so the first failing role is
	// deterministic for a given request
	checked := make(map[string]bool)
	for _, slot := range s.slots {
		for _, requirement := range slot.requirements {
			if checked[requirement.Role] {
				continue
			}
			checked[requirement.Role] = true

			capacity := int32(len(s.pool[requirement.Role])) * multiplier
			if requiredTotals[requirement.Role] > capacity {
				return &InsufficientEmployeesError{
					Role:      requirement.Role,
					Required:  requiredTotals[requirement.Role],
					Available: capacity,
				}
			}
		}
	}

	return nil
}

// Slots exposes the canonical flattened slot count.
func (s *Scheduler) Slots() int {
	return len(s.slots)
}
