package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/HarmoniApp/backend-sub000/internal/repository"
	"github.com/HarmoniApp/backend-sub000/internal/utils"
)

var defaultRoles = []string{"Cook", "Waiter", "Bartender", "Receptionist", "Cleaner"}

var defaultShifts = []domain.PredefinedShift{
	{Name: "Morning", StartTime: "06:00:00", EndTime: "14:00:00"},
	{Name: "Day", StartTime: "08:00:00", EndTime: "16:00:00"},
	{Name: "Evening", StartTime: "14:00:00", EndTime: "22:00:00"},
	{Name: "Night", StartTime: "22:00:00", EndTime: "06:00:00"}, // crosses midnight
}

func InsertRoles(repo *repository.Repository) error {
	for _, name := range defaultRoles {
		role := &domain.Role{Name: name}
		if err := repo.CreateRole(role); err != nil {
			return fmt.Errorf("unable to insert role %q: %w", name, err)
		}
	}
	return nil
}

func InsertPredefinedShifts(repo *repository.Repository) error {
	for _, shift := range defaultShifts {
		shift := shift
		if err := utils.ValidatePredefinedShiftTime(&shift); err != nil {
			return err
		}
		if err := repo.CreatePredefinedShift(&shift); err != nil {
			return fmt.Errorf("unable to insert predefined shift %q: %w", shift.Name, err)
		}
	}
	return nil
}

// InsertEmployees seeds n random active employees, each holding a random
// subset of the role catalog.
func InsertEmployees(repo *repository.Repository, n int) error {
	roles, err := repo.GetAllRoles()
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return fmt.Errorf("no roles in the catalog, seed roles first")
	}

	roleIDs := make([]int64, len(roles))
	for i, role := range roles {
		roleIDs[i] = role.ID
	}

	for i := 0; i < n; i++ {
		employee := utils.GenerateRandomEmployee(i+1, roleIDs)
		if err := repo.CreateEmployee(employee); err != nil {
			return fmt.Errorf("unable to insert employee %q: %w", employee.Code, err)
		}
	}
	return nil
}

// InsertAbsences seeds n random approved absences in the next four weeks.
func InsertAbsences(repo *repository.Repository, n int) error {
	employees, err := repo.GetEligibleEmployees(time.Now(), time.Now())
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return fmt.Errorf("no employees in the roster, seed employees first")
	}

	for i := 0; i < n; i++ {
		employee := employees[rand.Intn(len(employees))]
		start := time.Now().AddDate(0, 0, rand.Intn(21))
		absence := &domain.Absence{
			EmployeeID: employee.ID,
			Start:      start,
			End:        start.AddDate(0, 0, 1+rand.Intn(7)),
			Approved:   true,
		}
		if err := repo.CreateAbsence(absence); err != nil {
			return fmt.Errorf("unable to insert absence for employee %d: %w", employee.ID, err)
		}
	}
	return nil
}
