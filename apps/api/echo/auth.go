package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/identity"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    []byte(core.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "identityToken",
		Claims:        new(Claims),
	}
	contextIdentityKey = "identity"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsTeacher bool   `json:"is_teacher,omitempty"` // -> TEACHER PORTAL
	IsAdmin   bool   `json:"is_admin,omitempty"`   // -> ADMIN PORTAL
}

func GetIdentityClaims(idt identity.Identity) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    core.Conf.AppName,
			Subject:   strconv.Itoa(idt.ID),
			Audience:  "Academia",
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:     idt.Email,
		Role:      string(idt.Role),
		IsStudent: idt.IsStudent(),
		IsTeacher: idt.IsTeacher(),
		IsAdmin:   idt.IsAdmin(),
	}
}

// GenerateToken generates a signed JWT token string representing the identity Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextIdentity returns the caller's full Identity, fetching it from the
// store on first access and caching it on the request context.
func getContextIdentity(ctx echo.Context, svc *identity.Service) (identity.Identity, error) {
	if idt, ok := ctx.Get(contextIdentityKey).(identity.Identity); ok {
		return idt, nil
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return identity.Identity{}, err
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return identity.Identity{}, errUnauthorized
	}

	idt, err := svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == identity.ErrNotFound {
			return identity.Identity{}, errUnauthorized
		}
		return identity.Identity{}, errors.Wrap(err, "getting context identity")
	}
	if !idt.IsActive() {
		return identity.Identity{}, errAccountDeactivated
	}

	ctx.Set(contextIdentityKey, idt)
	return idt, nil
}
