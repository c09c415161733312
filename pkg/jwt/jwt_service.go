package jwt

import (
	"Cook-App-Backend/domain"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, email string, name string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		VerifyToken(ctx context.Context, token string) (domain.Claims, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	if ttl <= 0 {
		ttl = 120 * time.Minute
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    "COOK-APP",
		ttl:       ttl,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, email string, name string) (string, error) {
	now := time.Now()
	claims := jwtUserClaim{
		userID,
		email,
		name,
		jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) VerifyToken(_ context.Context, token string) (domain.Claims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, domain.Wrap(domain.KindUnauthorized, domain.ErrTokenInvalid.Message, err)
	}
	if !t_Token.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	out := domain.Claims{
		Email:       claims.Email,
		SubjectID:   claims.UserID,
		DisplayName: claims.Name,
	}
	if err := out.Validate(); err != nil {
		return domain.Claims{}, err
	}
	return out, nil
}
