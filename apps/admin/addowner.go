package main

import (
	"github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/user"
)

// addOwner creates an owner account, or reactivates and re-keys an existing
// user under that username.
func (cli *commandLine) addOwner(uname, name, email, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)
	if name == "" {
		name = uname
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		data := user.NewUser{
			Name:            name,
			Username:        uname,
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwd,
		}
		if err := data.Validate(cli.usrSvc); err != nil {
			return err
		}
		_, err = cli.usrSvc.Create(data, user.RoleOwner)
		return err
	}

	active := true
	data := user.UpdateUser{
		Name:            name,
		Email:           email,
		IsActive:        &active,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if err := data.Validate(usr, cli.usrSvc); err != nil {
		return err
	}
	_, err = cli.usrSvc.Update(usr.ID, data)
	return err
}
