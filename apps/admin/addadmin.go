package main

import (
	"context"

	"github.com/trezcool/shule/core/identity"
)

// addAdmin creates an active admin identity.
func (cli *commandLine) addAdmin(email, firstName, lastName, pwd string) error {
	ni := identity.NewIdentity{
		Email:      email,
		Password:   pwd,
		FirstName:  firstName,
		LastName:   lastName,
		Role:       identity.RoleAdmin,
		Department: "Administration",
	}
	if err := ni.Validate(cli.idSvc); err != nil {
		return err
	}
	if _, err := cli.idSvc.Create(context.Background(), ni); err != nil {
		return err
	}
	return nil
}
