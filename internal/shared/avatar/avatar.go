package avatar

import (
	"fmt"

	"github.com/google/uuid"
)

// URL derives the avatar reference for a user. The user id is the seed,
// so the same user always resolves to the same avatar.
func URL(baseURL string, userID uuid.UUID) string {
	return fmt.Sprintf("%s?seed=%s", baseURL, userID)
}
