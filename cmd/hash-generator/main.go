// Command hash-generator prints bcrypt hashes suitable for the
// users.hashed_password column, for seeding accounts by hand.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/catalog-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}

	hasher := auth.NewBcryptVerifier(*cost)
	for _, password := range flag.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
