// Package password implements one-way hashing of account credentials at rest.
package password

import "golang.org/x/crypto/bcrypt"

// hashCost keeps bcrypt work at a level suitable for interactive login latency.
const hashCost = 10

// Hash produces a randomly-salted bcrypt hash of the plaintext. The salt is
// generated per call, so hashing the same input twice yields different output.
// An error here means the crypto primitive itself failed and is not a normal
// outcome.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext is the password the hash was produced from.
// It never returns an error for a wrong password; the comparison is performed
// by bcrypt in constant time relative to the candidate.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
