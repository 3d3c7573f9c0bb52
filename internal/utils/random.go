package utils

import (
	"fmt"
	"math/rand"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

var commonFirstNames = []string{
	"Anna", "Piotr", "Maria", "Jan", "Katarzyna", "Tomasz", "Agnieszka", "Marcin",
	"Magdalena", "Krzysztof", "Ewa", "Andrzej", "Joanna", "Michal", "Barbara", "Pawel",
}

var commonLastNames = []string{
	"Nowak", "Kowalski", "Wisniewski", "Wojcik", "Kowalczyk", "Kaminski", "Lewandowski",
	"Zielinski", "Szymanski", "Dabrowski", "Kozlowski", "Jankowski", "Mazur", "Krawczyk",
}

// GenerateRandomEmployee builds a development-roster employee with a unique
// employee code and a random subset of the given roles.
func GenerateRandomEmployee(seq int, roleIDs []int64) *domain.Employee {
	firstName := commonFirstNames[rand.Intn(len(commonFirstNames))]
	lastName := commonLastNames[rand.Intn(len(commonLastNames))]

	shuffled := make([]int64, len(roleIDs))
	copy(shuffled, roleIDs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	count := 1
	if len(shuffled) > 1 {
		count += rand.Intn(len(shuffled))
	}

	return &domain.Employee{
		Code:     fmt.Sprintf("%c%c%03d", firstName[0], lastName[0], seq),
		FullName: fmt.Sprintf("%s %s", firstName, lastName),
		RoleIDs:  shuffled[:count],
		IsActive: true,
	}
}
