package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Issuer:     "fleetmap-test",
		Expiration: 60,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := getTestConfig()

	for _, role := range []models.Role{models.RoleCustomer, models.RoleMechanic} {
		t.Run(string(role), func(t *testing.T) {
			viewerID := uuid.New()

			token, expiresAt, err := GenerateToken(viewerID, role, cfg)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Greater(t, expiresAt, time.Now().Unix())

			claims, err := ValidateToken(token, cfg)
			require.NoError(t, err)
			assert.Equal(t, viewerID, claims.ViewerID)
			assert.Equal(t, role, claims.Role)
			assert.Equal(t, cfg.Issuer, claims.Issuer)
		})
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	cfg := getTestConfig()

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := GenerateToken(uuid.New(), models.RoleCustomer, cfg)
		require.NoError(t, err)

		other := cfg
		other.Secret = "another-secret"
		_, err = ValidateToken(token, other)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := cfg
		expired.Expiration = -5
		token, _, err := GenerateToken(uuid.New(), models.RoleMechanic, expired)
		require.NoError(t, err)

		_, err = ValidateToken(token, cfg)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		foreign := cfg
		foreign.Issuer = "someone-else"
		token, _, err := GenerateToken(uuid.New(), models.RoleMechanic, foreign)
		require.NoError(t, err)

		_, err = ValidateToken(token, cfg)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, _, err := GenerateToken(uuid.New(), models.Role("driver"), cfg)
		require.NoError(t, err)

		_, err = ValidateToken(token, cfg)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ViewerID: uuid.New(), Role: models.RoleCustomer})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ValidateToken(signed, cfg)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", cfg)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
