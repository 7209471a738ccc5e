package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/alphabatem/common/context"
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration time.Duration
	jwtSecretKey        string
}

type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.AccessTokenDuration = time.Duration(24 * time.Hour) // 24 hours
	svc.jwtSecretKey = os.Getenv("JWT_OAUTH_SECRET")
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	if svc.jwtSecretKey == "" {
		log.Warn("JWT_OAUTH_SECRET not configured, admin tokens will be rejected")
	}
	return nil
}

// VerifyJWTToken validates the signature and expiry and returns the email claim.
func (svc *JWTService) VerifyJWTToken(jwtToken string) (string, error) {
	if svc.jwtSecretKey == "" {
		return "", errors.New("JWT secret not configured")
	}

	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, svc.getJWTKey)
	if err == nil && token.Valid {
		claims, ok := token.Claims.(*CustomClaims)
		if ok && claims != nil {
			expTime, err := claims.GetExpirationTime()
			if err != nil {
				return "", fmt.Errorf("failed to get expiration time: %v", err)
			}
			now := jwt.NewNumericDate(time.Now())
			if expTime.Unix() < now.Unix() {
				return "", errors.New("token has expired")
			}

			return claims.Email, nil
		}
	}

	return "", errors.New("unsupported JWT format")
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

func (svc *JWTService) ToJWT(email string) (string, error) {
	expTime := time.Now().Add(svc.AccessTokenDuration)

	claims := &CustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "JaraTravels",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(svc.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}

	return authHeader[7:], nil
}
