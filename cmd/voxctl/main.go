// Command voxctl runs database maintenance for VoxArena: schema migration and
// taxonomy seeding.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nukigor/ai-voxarena/internal/app"
	"github.com/nukigor/ai-voxarena/internal/data/db"
	"github.com/nukigor/ai-voxarena/internal/data/repos"
	"github.com/nukigor/ai-voxarena/internal/modules/personas"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
	"github.com/nukigor/ai-voxarena/internal/platform/openai"
	"github.com/nukigor/ai-voxarena/internal/seed"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "voxctl",
		Short:         "VoxArena maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.LoadDotEnv(envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load (ignored when missing)")

	cmd.AddCommand(migrateCmd(), seedCmd())
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, svc, err := open()
			if err != nil {
				return err
			}
			defer log.Sync()
			defer svc.Close()

			if err := db.AutoMigrateAll(svc.DB()); err != nil {
				return err
			}
			log.Info("Migration complete", "driver", svc.Driver())
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		file       string
		describeAI bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load taxonomy categories, terms and demo personas",
		Long: `Seed upserts taxonomy categories and terms, then creates the demo
personas that do not exist yet. Running it twice is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			f, err := loadSeedFile(file)
			if err != nil {
				return err
			}

			log, svc, err := open()
			if err != nil {
				return err
			}
			defer log.Sync()
			defer svc.Close()

			gdb := svc.DB()
			if err := db.AutoMigrateAll(gdb); err != nil {
				return err
			}

			var describer *personas.Describer
			if describeAI {
				cfg := app.LoadConfig(log)
				ai, err := openai.NewClient(log, cfg.OpenAI)
				if err != nil {
					return fmt.Errorf("init openai client: %w", err)
				}
				describer = personas.NewDescriber(ai, log)
			}

			personaRepo := repos.NewPersonaRepo(gdb, log)
			termRepo := repos.NewTaxonomyRepo(gdb, log)
			res, err := seed.Run(ctx, seed.Deps{
				DB:         gdb,
				Log:        log,
				Terms:      termRepo,
				Categories: repos.NewTaxonomyCategoryRepo(gdb, log),
				Personas:   personaRepo,
				PersonaUsecases: personas.New(personas.UsecasesDeps{
					DB:           gdb,
					Log:          log,
					Personas:     personaRepo,
					PersonaLinks: repos.NewPersonaTaxonomyRepo(gdb, log),
					Taxonomies:   termRepo,
					Participants: repos.NewDebateParticipantRepo(gdb, log),
					Describer:    describer,
				}),
			}, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categories=%d terms_inserted=%d personas_created=%d\n",
				res.CategoriesUpserted, res.TermsInserted, res.PersonasCreated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file (defaults to the bundled vocabulary)")
	cmd.Flags().BoolVar(&describeAI, "describe-ai", false, "generate demo persona descriptions with OpenAI")
	return cmd
}

func loadSeedFile(path string) (*seed.File, error) {
	if path == "" {
		return seed.Bundled()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return seed.Parse(raw)
}

func open() (*logger.Logger, *db.Service, error) {
	mode := os.Getenv("LOG_MODE")
	if mode == "" {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	cfg := app.LoadConfig(log)
	svc, err := db.NewService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	return log, svc, nil
}
