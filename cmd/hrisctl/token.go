package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/config"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	tokenEmployee string
	tokenRole     string
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for an employee",
	Long: `Signs a token with JWT_SECRET_KEY carrying the employee id and role the
API trusts as the acting user. Intended for operators and local testing.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmployee, "employee", "", "employee id (required)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(user.RoleEmployee), "employee, hod, ceo or admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "lifetime (default JWT_ACCESS_EXPIRATION_TIME)")
	_ = tokenCmd.MarkFlagRequired("employee")
}

func runToken(cmd *cobra.Command, args []string) error {
	role, ok := user.ParseRole(tokenRole)
	if !ok {
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.JWT.AccessExpiration
	}

	svc := jwt.NewJWTService(cfg.JWT.Secret, ttl)
	token, expiresAt, err := svc.GenerateAccessToken(user.ActingUser{EmployeeID: tokenEmployee, Role: role})
	if err != nil {
		return err
	}

	logger.Debug("token minted",
		zap.String("employee_id", tokenEmployee),
		zap.String("role", string(role)),
		zap.Time("expires_at", time.Unix(expiresAt, 0)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
