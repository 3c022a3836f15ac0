package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iota-uz/certificates-backend/pkg/composables"
	"github.com/iota-uz/certificates-backend/pkg/configuration"
)

// ProvideActor resolves the authenticated actor from the headers the trusted
// gateway sets after verifying the session token. Requests without a valid
// actor identity are rejected before any handler runs.
func ProvideActor() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conf := configuration.Use()

			rawID := strings.TrimSpace(r.Header.Get(conf.ActorIDHeader))
			actorID, err := uuid.Parse(rawID)
			if err != nil || actorID == uuid.Nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			role := composables.Role(strings.TrimSpace(r.Header.Get(conf.ActorRoleHeader)))
			switch role {
			case composables.RoleAdmin, composables.RoleClient:
			default:
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := composables.WithActor(r.Context(), composables.Actor{ID: actorID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
