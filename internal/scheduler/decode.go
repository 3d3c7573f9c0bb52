package scheduler

import (
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

// Decoder maps a winning chromosome's abstract (slot, day, employee)
// indices back to concrete calendar shift records.
type Decoder struct {
	shifts map[int64]*domain.PredefinedShift
	roles  map[string]int64
}

func NewDecoder(predefinedShifts []*domain.PredefinedShift, roles []*domain.Role) *Decoder {
	d := &Decoder{
		shifts: make(map[int64]*domain.PredefinedShift, len(predefinedShifts)),
		roles:  make(map[string]int64, len(roles)),
	}
	for _, shift := range predefinedShifts {
		d.shifts[shift.ID] = shift
	}
	for _, role := range roles {
		d.roles[role.Name] = role.ID
	}
	return d
}

// Decode produces one unpublished shift record per assigned employee. Each
// gene's day-of-year is projected onto its nearest occurrence at or after
// the reference time; a slot whose end time-of-day precedes its start
// time-of-day crosses midnight.
func (d *Decoder) Decode(ch *Chromosome, at time.Time) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)

	for _, gene := range ch.genes {
		predefined, exists := d.shifts[gene.shiftID]
		if !exists {
			return nil, &UnknownReferenceError{Kind: "shift", ID: gene.shiftID}
		}

		startOfDay, err := time.Parse("15:04:05", predefined.StartTime)
		if err != nil {
			return nil, err
		}
		endOfDay, err := time.Parse("15:04:05", predefined.EndTime)
		if err != nil {
			return nil, err
		}

		date := projectDayOfYear(gene.day, at)
		start := date.Add(timeOfDay(startOfDay))
		end := date.Add(timeOfDay(endOfDay))
		if endOfDay.Before(startOfDay) {
			// the slot crosses midnight
			end = end.AddDate(0, 0, 1)
		}

		for _, employee := range gene.assigned {
			roleID, exists := d.roles[employee.Role]
			if !exists {
				return nil, &UnknownReferenceError{Kind: "role", ID: employee.Role}
			}

			shifts = append(shifts, &domain.Shift{
				Start:      start,
				End:        end,
				EmployeeID: employee.ID,
				RoleID:     roleID,
				Published:  false,
			})
		}
	}

	return shifts, nil
}

// projectDayOfYear resolves a day-of-year to the nearest upcoming calendar
// date: this year if the day has not yet passed, otherwise next year.
func projectDayOfYear(day int32, at time.Time) time.Time {
	date := time.Date(at.Year(), 1, 1, 0, 0, 0, 0, at.Location()).AddDate(0, 0, int(day)-1)
	today := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	if date.Before(today) {
		date = time.Date(at.Year()+1, 1, 1, 0, 0, 0, 0, at.Location()).AddDate(0, 0, int(day)-1)
	}
	return date
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
}
