// portalctl corre las tareas programadas del portal desde cron: la
// generación mensual de cuotas y la aplicación de mora. Ambas son
// re-ejecutables sin duplicar cobros.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/internal/ledger"
	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/models"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portalctl",
		Short: "Tareas programadas del portal residencial",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				slog.Info("sin archivo .env, usando variables del entorno")
			}
			config.ConnectDB()
			config.ConnectRedis()
		},
	}

	rootCmd.AddCommand(cuotasCmd(), moraCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() *ledger.Service {
	return ledger.New(config.DB, notify.Multi{notify.WhatsApp{}})
}

// withRunLock serializa corridas concurrentes del mismo comando con un
// candado SETNX en Redis. Sin Redis, la llave de idempotencia del libro
// mayor sigue protegiendo contra duplicados; el candado sólo ahorra trabajo.
func withRunLock(name string, fn func() error) error {
	if config.RDB != nil {
		key := "portalctl:lock:" + name
		ok, err := config.RDB.SetNX(config.Ctx, key, time.Now().Format(time.RFC3339), 10*time.Minute).Result()
		if err != nil {
			slog.Warn("no se pudo tomar el candado en Redis", "error", err)
		} else if !ok {
			slog.Info("otra corrida está en curso, saliendo", "lock", key)
			return nil
		} else {
			defer config.RDB.Del(config.Ctx, key)
		}
	}
	return fn()
}

func cuotasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cuotas",
		Short: "Genera las cuotas de mantenimiento del mes para todos los residenciales en corte",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunLock("cuotas", func() error {
				count, err := newService().RunMonthlyCycle(time.Now())
				if err != nil {
					return err
				}
				slog.Info("ciclo de cuotas terminado", "generated", count)
				return nil
			})
		},
	}
}

func moraCmd() *cobra.Command {
	var tenantID uint
	cmd := &cobra.Command{
		Use:   "mora",
		Short: "Aplica la mora a las cuotas vencidas (todos los residenciales, o uno con --tenant)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunLock("mora", func() error {
				svc := newService()
				now := time.Now()

				if tenantID != 0 {
					count, err := svc.AccrueLateFees(tenantID, now)
					if err != nil {
						return err
					}
					slog.Info("mora aplicada", "tenant_id", tenantID, "surcharged", count)
					return nil
				}

				var tenants []models.Tenant
				if err := config.DB.Find(&tenants).Error; err != nil {
					return err
				}
				total := 0
				for _, tenant := range tenants {
					count, err := svc.AccrueLateFees(tenant.ID, now)
					if err != nil {
						return err
					}
					total += count
				}
				slog.Info("mora aplicada", "tenants", len(tenants), "surcharged", total)
				return nil
			})
		},
	}
	cmd.Flags().UintVar(&tenantID, "tenant", 0, "limitar a un residencial")
	return cmd
}
