package main

import (
	"github.com/Yazi0/SmartTuitionManager/core/user"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	usr, err := cli.usrSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		return err
	}
	data := user.UpdateUser{
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if err := data.Validate(usr, cli.usrSvc); err != nil {
		return err
	}
	_, err = cli.usrSvc.Update(usr.ID, data)
	return err
}
