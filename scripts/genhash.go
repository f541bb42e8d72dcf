// genhash prints the stored hash for a password, for seeding accounts by hand.
//
//	go run scripts/genhash.go <username> <password>
package main

import (
	"fmt"
	"os"

	"opportunityhub-backend/pkg/auth"
	"opportunityhub-backend/pkg/validation"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: genhash <username> <password>")
		os.Exit(2)
	}
	username, password := os.Args[1], os.Args[2]

	for _, problem := range validation.ValidatePassword(password, validation.UserAttributes{Username: username}) {
		fmt.Fprintln(os.Stderr, "warning:", problem)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("User: %s\nHash: %s\n", username, hash)
}
