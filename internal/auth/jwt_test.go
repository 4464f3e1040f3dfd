package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SAP-F-2025/testing-service/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", "school-testing", 24*time.Hour)

	for _, role := range []models.UserRole{models.RoleSuperAdmin, models.RoleTeacher, models.RoleStudent} {
		t.Run(string(role), func(t *testing.T) {
			token, err := manager.Issue(Identity{UserID: "user-1", Email: "u@school.test", Role: role, Name: "User"})
			if err != nil {
				t.Fatalf("issue: %v", err)
			}

			identity, err := manager.Parse(token)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if identity.UserID != "user-1" || identity.Email != "u@school.test" || identity.Name != "User" {
				t.Fatalf("unexpected identity: %+v", identity)
			}
			if identity.Role != role {
				t.Fatalf("expected role %s, got %s", role, identity.Role)
			}
		})
	}
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	manager := NewTokenManager("secret", "school-testing", 24*time.Hour)
	manager.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }

	token, err := manager.Issue(Identity{UserID: "user-1", Role: models.RoleTeacher})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	manager.now = time.Now
	if _, err := manager.Parse(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	manager := NewTokenManager("secret", "school-testing", time.Hour)
	other := NewTokenManager("other-secret", "school-testing", time.Hour)

	foreign, err := other.Issue(Identity{UserID: "user-1", Role: models.RoleTeacher})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now := time.Now()
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: "user-1",
		Role:   models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "school-testing",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}

	unknownRole, err := manager.Issue(Identity{UserID: "user-1", Role: models.UserRole("janitor")})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "user-1",
		Role:             models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "school-testing"},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not-a-token"},
		{"wrong secret", foreign},
		{"wrong algorithm", hs512},
		{"unknown role", unknownRole},
		{"missing expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Parse(tt.token); !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestAuthorizeRoleGroups(t *testing.T) {
	groups := map[string]models.UserRole{
		"admin":   models.RoleSuperAdmin,
		"teacher": models.RoleTeacher,
		"student": models.RoleStudent,
	}
	roles := []models.UserRole{models.RoleSuperAdmin, models.RoleTeacher, models.RoleStudent}

	accepted, rejected := 0, 0
	for group, groupRole := range groups {
		for _, role := range roles {
			err := Authorize(&Identity{UserID: "u", Role: role}, groupRole)
			switch {
			case role == groupRole && err == nil:
				accepted++
			case role != groupRole && errors.Is(err, ErrForbidden):
				rejected++
			default:
				t.Errorf("group %s, role %s: unexpected result %v", group, role, err)
			}
		}
	}

	if accepted != 3 || rejected != 6 {
		t.Fatalf("expected 3 accepted and 6 rejected, got %d and %d", accepted, rejected)
	}
}

func TestAuthorizeNilIdentity(t *testing.T) {
	if err := Authorize(nil, models.RoleTeacher); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
