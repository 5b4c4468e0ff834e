package workload

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/dtroode/sesn-compliance/internal/model"
)

// GenerateUsers builds n synthetic users. Data processing consent is always
// granted; profiling and sharing are random.
func GenerateUsers(rng *rand.Rand, n int) []model.RegisterParams {
	users := make([]model.RegisterParams, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		users = append(users, model.RegisterParams{
			UserID:  id,
			Name:    fmt.Sprintf("User%04d", 1000+rng.IntN(9000)),
			Contact: fmt.Sprintf("user%05d@sesn.org", 1+rng.IntN(100000)),
			Consent: model.Consent{
				model.ConsentDataProcessing: true,
				model.ConsentProfiling:      rng.IntN(2) == 1,
				model.ConsentSharing:        rng.IntN(2) == 1,
			},
			Payload: []byte(fmt.Sprintf(`{"user_id":%q,"segment":%d}`, id, rng.IntN(16))),
		})
	}
	return users
}
