package middleware

import (
	"net/http"

	h "hiveportal/internal/delivery/http/helpers"
)

// AdminPassphraseHeader carries the shared admin passphrase.
const AdminPassphraseHeader = "X-Admin-Passphrase"

// RequireAdmin returns a wrapper that lets a request through only when the
// passphrase header equals passphrase. The comparison is plaintext; the gate
// only keeps casual visitors out of the admin console.
func RequireAdmin(passphrase string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(AdminPassphraseHeader)
			if given == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing admin passphrase")
				return
			}
			if given != passphrase {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid admin passphrase")
				return
			}
			next(w, r)
		}
	}
}
