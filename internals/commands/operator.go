package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"fisiocatania_backend/internals/features/operators/operatori/service"
	helper "fisiocatania_backend/internals/helpers"
)

var (
	opNome     string
	opCognome  string
	opEmail    string
	opPassword string
	opAdmin    bool
)

var operatorCmd = &cobra.Command{
	Use:   "operator",
	Short: "Manage staff accounts",
}

var operatorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an operator (there is no self-registration)",
	Long: `Create an operator account.

Examples:
  fisiocatania operator create --email anna@clinic.it --nome Anna --cognome Bianchi --password '...' --admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(opEmail) == "" || strings.TrimSpace(opNome) == "" || strings.TrimSpace(opCognome) == "" {
			return errors.New("--email, --nome and --cognome are required")
		}
		cfg, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		svc := service.NewOperatoreService(db, cfg.OperatorDeletePolicy)
		op, err := svc.Create(cmd.Context(), service.CreateInput{
			Nome:     opNome,
			Cognome:  opCognome,
			Email:    opEmail,
			Password: opPassword,
			IsAdmin:  opAdmin,
		})
		if err != nil {
			if helper.IsUniqueViolation(err) {
				return errors.New("an operator with this email already exists")
			}
			return err
		}
		cmd.Printf("operator %d created (%s, admin=%t)\n", op.ID, op.Email, op.IsAdmin)
		return nil
	},
}

func init() {
	f := operatorCreateCmd.Flags()
	f.StringVar(&opNome, "nome", "", "First name")
	f.StringVar(&opCognome, "cognome", "", "Last name")
	f.StringVar(&opEmail, "email", "", "Login email")
	f.StringVar(&opPassword, "password", "", "Password (at least 8 characters)")
	f.BoolVar(&opAdmin, "admin", false, "Grant operator management")
	_ = operatorCreateCmd.MarkFlagRequired("password")
	operatorCmd.AddCommand(operatorCreateCmd)
}
