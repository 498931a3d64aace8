package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// credentialHeader carries the bearer token, forwarded verbatim
	credentialHeader = "Authorization"
	identityKey      = "identity"
)

// requireAdmin rejects the request before any handler runs unless the
// identity provider accepts its credential. A missing header is verified as
// an empty credential.
func requireAdmin(gate *auth.Gate, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("middleware", "auth").Logger()

	return func(c *gin.Context) {
		credential := c.GetHeader(credentialHeader)
		identity, err := gate.Authorize(c.Request.Context(), credential)
		if err != nil {
			log.Warn().
				Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("Admin request rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": authMessage(err)})
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(auth.WithCredential(c.Request.Context(), credential))
		c.Next()
	}
}

// identityFrom returns the verified caller stored by requireAdmin
func identityFrom(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*auth.Identity); ok {
			return identity
		}
	}
	return nil
}
