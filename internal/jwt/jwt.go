package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blogcore-dev/blogcore/internal/domain"
	internal_errors "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeUser(jwtStr string) (*domain.User, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = user.Id
	claims["username"] = user.Username
	claims["moderator"] = user.Moderator
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("token signing failed", "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

// DecodeUser validates the token and extracts the identity claims.
func (j *Jwt) DecodeUser(jwtStr string) (*domain.User, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, internal_errors.Unauthorized("Invalid token signature")
	}
	if !token.Valid {
		return nil, internal_errors.Unauthorized("Invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid token claims")
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid token claims")
	}
	username, _ := claims["username"].(string)
	moderator, _ := claims["moderator"].(bool)

	return &domain.User{
		Id:        int64(uid),
		Username:  username,
		Moderator: moderator,
	}, nil
}
