// seed.go — генерация случайных людей для наполнения хранилища.
package service

import (
	"math/rand/v2"

	"github.com/iamhitya/apilogdemo/internal/domain/model"
)

var (
	seedFirstNames = []string{
		"Alex", "Sam", "Taylor", "Jordan", "Casey", "Morgan", "Riley", "Jamie",
		"Dakota", "Avery", "Amy", "Arton", "Vicky", "Jordan", "Peter",
	}
	seedLastNames = []string{
		"Smith", "Johnson", "Brown", "Williams", "Jones", "Garcia", "Miller",
		"Davis", "Wilson", "Anderson", "Braga", "Solvin", "Lee", "Joe",
	}
	seedCities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	}
)

const (
	seedMinAge = 18
	seedMaxAge = 80
)

// RandomPeople генерирует count людей со случайными именем, возрастом
// (18–80) и городом. intn == nil — math/rand/v2.IntN.
func RandomPeople(count int, intn func(n int) int) []model.Person {
	if intn == nil {
		intn = rand.IntN
	}

	people := make([]model.Person, 0, max(count, 0))
	for range count {
		people = append(people, model.Person{
			Name: seedFirstNames[intn(len(seedFirstNames))] + " " + seedLastNames[intn(len(seedLastNames))],
			Age:  seedMinAge + intn(seedMaxAge-seedMinAge+1),
			City: seedCities[intn(len(seedCities))],
		})
	}
	return people
}
