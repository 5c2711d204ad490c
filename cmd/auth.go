package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// AuthRegister creates a new account and establishes it as the current identity.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	manager, _, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	user, err := manager.Register(cmd.String("name"), cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	r.logger.Infof("registered account %s", user.ID)
	return r.writePlain("✓ Registered and logged in as %s <%s>\n", user.Name, user.Email)
}

// AuthLogin establishes an existing account as the current identity.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	manager, _, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	user, err := manager.Login(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Logged in as %s <%s>\n", user.Name, user.Email)
}

// AuthLogout clears the current identity.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	manager, _, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	if manager.Current() == nil {
		return r.writePlain("Not logged in\n")
	}

	if err := manager.Logout(); err != nil {
		return err
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami prints the current identity, if any.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	manager, _, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	user := manager.Current()
	if user == nil {
		return r.writePlain("Not logged in\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	return r.writePlain("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
}
