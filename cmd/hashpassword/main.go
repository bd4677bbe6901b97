// Command hashpassword prints a bcrypt hash suitable for ADMIN_PASSWORD.
//
// Usage: go run ./cmd/hashpassword <password>
package main

import (
	"fmt"
	"os"

	"github.com/MominRaza6762/SamraAi/utils/auth"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
