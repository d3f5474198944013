// Copyright (c) 2026 Plume. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// Security-sensitive code (password hashing, JWT signing, refresh-token
// generation) is isolated here and injected into the application layer via
// small interfaces, keeping the domain packages free of crypto concerns.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the payload embedded inside a JWT access token.
//
// Embedding the user's identity in the token lets the authentication
// middleware reconstruct the active user without a database round-trip
// on every request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom claims are abbreviated to keep the JWT payload small.
	UserID int64  `json:"uid"`
	Name   string `json:"unm"`
}

// TokenService generates and verifies RS256-signed JWT tokens.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewTokenService reads the RSA key pair from the given filesystem paths.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
	}, nil
}

// GenerateAccessToken creates a signed JWT access token for a user.
func (service *TokenService) GenerateAccessToken(userID int64, name string, timeToLive time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		UserID: userID,
		Name:   name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
