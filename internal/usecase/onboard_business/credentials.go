package onboard_business

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	temporaryPasswordBytes = 18
	verificationTokenBytes = 32
)

// generateTemporaryPassword возвращает случайный пароль и его bcrypt-хэш.
// Открытый пароль отдаётся вызывающему один раз и нигде не сохраняется.
func generateTemporaryPassword() (password, hash string, err error) {
	raw := make([]byte, temporaryPasswordBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate password: %w", err)
	}
	password = base64.RawURLEncoding.EncodeToString(raw)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	return password, string(hashed), nil
}

// generateVerificationToken возвращает одноразовый токен верификации email
// и его sha256-дайджест. Хранится и сверяется только дайджест.
func generateVerificationToken() (token, digest string, err error) {
	raw := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(raw)
	return token, HashToken(token), nil
}

// HashToken возвращает sha256-дайджест токена в hex.
// Используется и при выдаче, и при проверке входящего токена.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
