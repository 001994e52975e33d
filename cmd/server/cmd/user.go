package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"passvault/internal/app/server"
)

var (
	userEmail     string
	userCreatedBy string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Administer accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision an account",
	Long: `Creates an account without going through public registration.
The password is read from the terminal, or from the first line of stdin when it is not a terminal.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var createdBy *uuid.UUID
		if userCreatedBy != "" {
			id, err := uuid.Parse(userCreatedBy)
			if err != nil {
				return fmt.Errorf("invalid --created-by: %w", err)
			}
			createdBy = &id
		}

		password, err := readPassword(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		app, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("init server: %w", err)
		}
		defer app.Close()

		u, err := app.ProvisionUser(cmd.Context(), userEmail, password, createdBy)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

func readPassword(out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "account e-mail address")
	userCreateCmd.Flags().StringVar(&userCreatedBy, "created-by", "", "id of the provisioning administrator")
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
}
