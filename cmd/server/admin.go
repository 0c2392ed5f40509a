package main

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/employee-management-api/internal/database"
	"github.com/yukikurage/employee-management-api/internal/repository"
	"github.com/yukikurage/employee-management-api/internal/services"
)

var adminFlags struct {
	email    string
	password string
	fname    string
	lname    string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an approved admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := database.Migrate(db); err != nil {
			return err
		}

		svc := services.NewAccountService(repository.NewAccountRepository(db))
		account, err := svc.CreateAdmin(cmd.Context(), services.RegisterInput{
			FName:    adminFlags.fname,
			LName:    adminFlags.lname,
			Email:    adminFlags.email,
			Password: adminFlags.password,
		})
		if err != nil {
			return err
		}

		printf(cmd, "created admin %s (%s)\n", account.Email, account.ID)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.email, "email", "", "admin email")
	f.StringVar(&adminFlags.password, "password", "", "admin password")
	f.StringVar(&adminFlags.fname, "fname", "Admin", "first name")
	f.StringVar(&adminFlags.lname, "lname", "", "last name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
