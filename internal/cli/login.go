package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront/client/internal/api"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	if err := a.store.Auth.Login(cmd.Context(), api.Credentials{
		Email:    loginEmail,
		Password: loginPassword,
	}); err != nil {
		return fmt.Errorf("login failed: %s", a.store.Auth.Err())
	}

	session := a.store.Auth.Session()
	fmt.Printf("Logged in as %s (%s)\n", session.User.Name, session.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	a.store.Auth.Logout()
	fmt.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	if !a.store.Auth.IsAuthenticated() {
		fmt.Println("Not logged in (guest)")
		return nil
	}

	session := a.store.Auth.Session()
	fmt.Printf("%s <%s> role=%s\n", session.User.Name, session.User.Email, session.User.Role)
	return nil
}
