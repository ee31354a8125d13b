package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storefront-api/pkg/config"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "storefront-admin",
	Short: "Tareas de operación del storefront",
	Long:  "Migraciones del directorio de clientes y mantenimiento del catálogo de roles.",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
			applied, err := postgres.Migrate(ctx, pool, log)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Sin migraciones pendientes")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Aplicada %s\n", v)
			}
			return nil
		})
	},
}

var seedRolesCmd = &cobra.Command{
	Use:   "seed-roles",
	Short: "Crea o actualiza los roles de sistema (incluido Registered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
			uc := usecase.NewRoleUseCase(postgres.NewRoleRepository(pool))
			seeded, err := uc.SeedSystemRoles(ctx)
			if err != nil {
				return fmt.Errorf("sembrar roles: %w", err)
			}
			log.Info().Strs("roles", seeded).Msg("roles de sistema sembrados")
			return nil
		})
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Lista los roles de cliente",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, _ *logger.Logger) error {
			roles, err := usecase.NewRoleUseCase(postgres.NewRoleRepository(pool)).List(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYSTEM NAME\tNAME\tACTIVE")
			for _, r := range roles {
				fmt.Fprintf(w, "%s\t%s\t%t\n", r.SystemName, r.Name, r.Active)
			}
			return w.Flush()
		})
	},
}

// withPool abre la base con la configuración del entorno y ejecuta fn.
func withPool(ctx context.Context, fn func(context.Context, *pgxpool.Pool, *logger.Logger) error) error {
	cfg := config.Read()
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	return fn(ctx, pool, log)
}

func main() {
	rootCmd.AddCommand(migrateCmd, seedRolesCmd, rolesCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
