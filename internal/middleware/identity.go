package middleware

import (
	"context"
	"net/http"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
)

// ProfileIDKey holds the caller's profile id for the duration of a request.
// The upstream identity provider is out of scope; clients present their
// profile id in the X-Profile-ID header.
const ProfileIDKey = "profile_id"

type profileFetcher interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

// Identity requires a well-formed X-Profile-ID header and stashes it in the
// request context.
func Identity() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		id := c.GetHeader("X-Profile-ID")
		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ginext.H{"error": "missing or invalid X-Profile-ID header"},
			)
			return
		}
		c.Set(ProfileIDKey, id)
		c.Next()
	}
}

// VolunteerOnly gates the check-in tooling behind the caller's
// VolunteerGrant. Identity must run first.
func VolunteerOnly(profiles profileFetcher) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		profile, err := profiles.GetByID(c.Request.Context(), c.GetString(ProfileIDKey))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ginext.H{"error": "unknown profile"},
			)
			return
		}

		if !profile.IsVolunteer {
			c.AbortWithStatusJSON(http.StatusForbidden,
				ginext.H{"error": domain.ErrNotVolunteer.Error()},
			)
			return
		}

		c.Next()
	}
}
