/*
Shrdliced starts the blocks-world plan service and begins listening for new
connections.

Usage:

	shrdliced [flags]
	shrdliced [flags] -l [[ADDRESS]:PORT]

Once started, the plan service listens for HTTP requests and responds to
them using a small REST protocol: log in, create a world, and send
utterances against it one at a time. By default it listens on
localhost:8080; this can be changed with the --listen/-l flag or the
SHRDLITED_LISTEN_ADDRESS environment variable.

If a JWT token secret is not given, one is generated and seeded from a
cryptographic random source. As a consequence, in this mode of operation all
tokens are rendered invalid as soon as the server shuts down. This is
suitable for testing, but a secret must be given via either the CLI flag or
the environment variable if running in production.

The flags are:

	-v, --version
		Give the current version of the plan service and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		SHRDLITED_LISTEN_ADDRESS, and if that is not given, defaults to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are fewer
		than 32 bytes in the secret, it is repeated until it is. The maximum
		size is 64 bytes. If not given, defaults to the value of environment
		variable SHRDLITED_TOKEN_SECRET. If no secret is specified or an
		empty one is given, a random secret is automatically generated.

	-f, --db FILE
		Path to the sqlite database file to use for user and session
		storage. If not given, defaults to the value of environment
		variable SHRDLITED_DATABASE, and if that is not given, defaults to
		"shrdlite.db" in the current working directory.
*/
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/shrdlite/internal/planservice"
	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "SHRDLITED_LISTEN_ADDRESS"
	EnvSecret = "SHRDLITED_TOKEN_SECRET"
	EnvDB     = "SHRDLITED_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the plan service and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.StringP("db", "f", "", "Path to the sqlite database file to use.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (shrdlite v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := "localhost:8080"
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		addr = normalizeListenAddr(listenAddr)
	}

	dbFile := "shrdlite.db"
	if v := os.Getenv(EnvDB); v != "" {
		dbFile = v
	}
	if pflag.Lookup("db").Changed {
		dbFile = *flagDB
	}

	secret := tokenSecret()

	svc, err := planservice.New(dbFile, secret)
	if err != nil {
		log.Fatalf("FATAL could not start plan service: %s", err.Error())
	}
	defer svc.Close()
	log.Printf("DEBUG Plan service initialized against %s", dbFile)

	// immediately create a default user so there is someone to log in as.
	_, err = svc.CreateUser(context.Background(), "admin", "password")
	if err != nil && !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}
	if err == nil {
		log.Printf("INFO  Added initial admin user with password 'password'...")
	}

	log.Printf("INFO  Starting plan service %s...", version.ServerCurrent)
	if err := svc.ListenAndServe(addr); err != nil {
		log.Fatalf("FATAL plan service exited: %s", err.Error())
	}
}

func normalizeListenAddr(listenAddr string) string {
	bindParts := strings.SplitN(listenAddr, ":", 2)
	if len(bindParts) != 2 {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}
	if _, err := strconv.Atoi(bindParts[1]); err != nil {
		fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
		os.Exit(1)
	}
	return listenAddr
}

func tokenSecret() []byte {
	tokSecStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}

	if tokSecStr == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret
	}

	secret := []byte(tokSecStr)
	for len(secret) < 32 {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	if len(secret) > 64 {
		secret = secret[:64]
	}
	return secret
}
