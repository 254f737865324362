package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UnauthorizedBody is the only body sent for a missing or invalid identity.
var UnauthorizedBody = gin.H{"error": "Unauthorized"}

// AuthMiddleware creates a Gin middleware handler that validates bearer JWTs
// issued by the identity provider. The token subject becomes the owner id.
// An empty issuer disables the issuer check.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	})}
	if issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(parserOpts...)

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, UnauthorizedBody)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, UnauthorizedBody)
			return
		}

		token, err := parser.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			reason := "invalid"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				reason = "expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				reason = "not_valid_yet"
			case errors.Is(err, jwt.ErrTokenInvalidIssuer):
				reason = "issuer"
			}
			logger.Warn("Invalid token", slog.String("reason", reason), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, UnauthorizedBody)
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Warn("Token carries no subject")
			c.AbortWithStatusJSON(http.StatusUnauthorized, UnauthorizedBody)
			return
		}
		userID := claims.Subject

		ctx := WithUserID(c.Request.Context(), userID)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}
