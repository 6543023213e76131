//go:build race

package auth

import "golang.org/x/crypto/bcrypt"

// passwordHashCost drops to the minimum work factor under -race.
func passwordHashCost() int {
	return bcrypt.MinCost
}
