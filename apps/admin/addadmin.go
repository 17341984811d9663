package main

import (
	"context"
	"time"

	"github.com/trezcool/matokeo/core"
	"github.com/trezcool/matokeo/core/account"
)

// addAdmin creates an admin account, or resets its password if the username is taken.
func (cli *commandLine) addAdmin(uname, email, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	adm, err := cli.accountRepo.GetAdminByUsername(ctx, uname)
	if err != nil {
		if err != account.ErrNotFound {
			return err
		}
		adm = account.Admin{
			Identity: account.Identity{
				Username:  uname,
				FullName:  uname,
				Email:     email,
				CreatedAt: time.Now().UTC(),
			},
		}
		if err := adm.SetPassword(pwd); err != nil {
			return err
		}
		_, err := cli.accountRepo.CreateAdmin(ctx, adm)
		return err
	}

	if err := adm.SetPassword(pwd); err != nil {
		return err
	}
	return cli.accountRepo.UpdateAdminPassword(ctx, adm.ID, adm.PasswordHash)
}
