package firebase

import (
	"Cook-App-Backend/domain"
	"context"

	firebasesdk "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type (
	FirebaseService interface {
		VerifyToken(ctx context.Context, idToken string) (domain.Claims, error)
	}

	firebaseService struct {
		client *auth.Client
	}
)

// NewFirebaseService initializes the admin SDK. credentialsFile may be empty
// when application default credentials are available.
func NewFirebaseService(ctx context.Context, projectID string, credentialsFile string) (FirebaseService, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebasesdk.NewApp(ctx, &firebasesdk.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &firebaseService{client: client}, nil
}

func (s *firebaseService) VerifyToken(ctx context.Context, idToken string) (domain.Claims, error) {
	tok, err := s.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		switch {
		case auth.IsIDTokenExpired(err):
			return domain.Claims{}, domain.ErrTokenExpired
		case auth.IsIDTokenRevoked(err):
			return domain.Claims{}, domain.ErrTokenRevoked
		default:
			return domain.Claims{}, domain.Wrap(domain.KindUnauthorized, domain.ErrTokenInvalid.Message, err)
		}
	}
	return ClaimsFromToken(tok)
}

// ClaimsFromToken maps a verified Firebase token to domain claims. A token
// without an email claim is rejected.
func ClaimsFromToken(tok *auth.Token) (domain.Claims, error) {
	if tok == nil {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	claims := domain.Claims{
		Email:       stringClaim(tok.Claims, "email"),
		SubjectID:   tok.UID,
		DisplayName: stringClaim(tok.Claims, "name"),
		Avatar:      stringClaim(tok.Claims, "picture"),
	}
	if err := claims.Validate(); err != nil {
		return domain.Claims{}, err
	}
	return claims, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
