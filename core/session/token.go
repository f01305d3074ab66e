package session

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/tkabila/shajara/core/journal"
)

// The durable side-channel stores the principal as a signed, self-contained
// token: the signature guards against tampering, while the claims are restored
// verbatim (no expiry, no roster re-validation; see Service).

var errInvalidToken = errors.New("invalid identity token")

type identityClaims struct {
	jwt.RegisteredClaims
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Role     Role                `json:"role"`
	Sections []journal.SectionID `json:"sections,omitempty"`
}

// EncodeIdentity serializes a principal into a signed token string.
func EncodeIdentity(p Principal, secret []byte, issuer string) (string, error) {
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  issuer,
			Subject: p.PrincipalID(),
		},
		Name:  p.PrincipalName(),
		Email: p.PrincipalEmail(),
		Role:  p.Role(),
	}
	if teacher, ok := p.(TeacherIdentity); ok {
		claims.Sections = teacher.Sections
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "signing identity token")
	}
	return ss, nil
}

// DecodeIdentity parses a token string back into the principal it carries.
func DecodeIdentity(tokenStr string, secret []byte) (Principal, error) {
	claims := new(identityClaims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	switch claims.Role {
	case RoleTeacher:
		return TeacherIdentity{
			ID:       claims.Subject,
			Name:     claims.Name,
			Email:    claims.Email,
			Sections: claims.Sections,
		}, nil
	case RoleStudent:
		return StudentIdentity{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
		}, nil
	}
	return nil, errInvalidToken
}
