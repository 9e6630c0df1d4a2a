package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type userAddCmd struct {
	username string
	password string
}

func (*userAddCmd) Name() string     { return "user-add" }
func (*userAddCmd) Synopsis() string { return "create a login together with its own store" }
func (*userAddCmd) Usage() string {
	return `nexusctl user-add -u <username> -p <password>

  Creates a user and an empty store owned by it, then prints the store id.
`
}

func (c *userAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "login name")
	f.StringVar(&c.password, "p", "", "password")
}

func (c *userAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fail("Error: -u and -p are required.")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer closeApp(a)

	user, err := a.Services.Auth.CreateUser(ctx, c.username, c.password)
	if err != nil {
		fail("Error creating user %q: %v", c.username, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("created user %s with store %s\n", user.Username, user.StoreID)
	return subcommands.ExitSuccess
}
