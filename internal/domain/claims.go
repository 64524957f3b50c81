package domain

import "github.com/golang-jwt/jwt/v5"

// ScopeSyncAdmin permite disparar e consultar o sync.
const ScopeSyncAdmin = "sync:admin"

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}
