// PawPal is a terminal pet-adoption companion: browse adoptable pets, file
// applications, chat with shelters, and lean on Gemini-backed helpers for
// portraits, clips, and adoption advice.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pawpal/cmd/pawpal/ui"
	"pawpal/internal/assist"
	"pawpal/internal/catalog"
	"pawpal/internal/config"
	"pawpal/internal/geo"
	"pawpal/internal/journal"
	"pawpal/internal/logging"
	"pawpal/internal/search"
	"pawpal/internal/session"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pawpal",
	Short: "PawPal - a pet adoption companion for your terminal",
	Long: `PawPal helps you find a pet to adopt: browse the catalog, filter by
size and personality, apply to adopt, message shelters, and generate
portraits and clips of your favourites.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive UI owns the terminal; keep zap for subcommands.
		if cmd.CalledAs() == "pawpal" {
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// petsCmd lists the catalog without entering the UI.
var petsCmd = &cobra.Command{
	Use:   "pets",
	Short: "List adoptable pets",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.NewSeededStore()
		if err != nil {
			return err
		}
		for _, pet := range store.All() {
			logger.Info("pet",
				zap.String("id", pet.ID),
				zap.String("name", pet.Name),
				zap.String("breed", pet.Breed),
				zap.String("size", string(pet.Size)),
				zap.String("status", string(pet.AdoptionStatus)))
			fmt.Printf("%-10s %-20s %-8s %s\n", pet.Name, pet.Breed, pet.Size, pet.AdoptionStatus)
		}
		return nil
	},
}

// searchCmd filters the catalog from the command line.
var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search pets by name or breed",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.NewSeededStore()
		if err != nil {
			return err
		}
		q := search.Query{FreeText: strings.Join(args, " ")}
		if sizeFlag, _ := cmd.Flags().GetString("size"); sizeFlag != "" {
			var size catalog.Size
			switch strings.ToLower(sizeFlag) {
			case "small":
				size = catalog.SizeSmall
			case "medium":
				size = catalog.SizeMedium
			case "large":
				size = catalog.SizeLarge
			default:
				return fmt.Errorf("invalid size %q (valid: small, medium, large)", sizeFlag)
			}
			q.Size = &size
		}
		tags, _ := cmd.Flags().GetStringSlice("personality")
		q.Personalities = tags

		results := search.Filter(store.All(), q)
		logger.Info("search complete", zap.Int("matches", len(results)))
		if len(results) == 0 {
			fmt.Println("No pets match.")
			return nil
		}
		for _, pet := range results {
			fmt.Printf("%-10s %-20s %s\n", pet.Name, pet.Breed, strings.Join(pet.Personality, ", "))
		}
		return nil
	},
}

// versionCmd prints the version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the PawPal version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()
		fmt.Printf("%s %s\n", cfg.Name, cfg.Version)
	},
}

// runInteractive boots the full app and hands the terminal to bubbletea.
func runInteractive() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.Logging.Dir, cfg.Logging.Debug, cfg.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()
	logging.Boot("pawpal starting")

	// Journal first so derived records survive restarts. A broken journal
	// degrades to memory-only.
	var jnl *journal.SQLiteJournal
	storeOpts := []catalog.Option{}
	if j, err := journal.Open(cfg.Journal.DatabasePath); err != nil {
		logging.BootError("journal unavailable, running in memory: %v", err)
	} else {
		jnl = j
		defer jnl.Close()
		storeOpts = append(storeOpts, catalog.WithJournal(jnl))
	}

	store, err := catalog.NewSeededStore(storeOpts...)
	if err != nil {
		return err
	}
	if jnl != nil {
		if err := jnl.Restore(store); err != nil {
			logging.BootError("journal replay failed: %v", err)
		}
	}

	sess := session.New(store,
		session.WithTheme(session.Theme(cfg.UI.Theme)),
		session.WithLanguage(session.Language(cfg.UI.Language)))

	deps := ui.Deps{
		Store:        store,
		Session:      sess,
		Gate:         assist.NewKeyGate(cfg.Assist.APIKey, nil),
		PollInterval: cfg.GetPollInterval(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Assist.APIKey != "" {
		svc, err := assist.NewService(ctx, assist.Config{
			APIKey:     cfg.Assist.APIKey,
			ChatModel:  cfg.Assist.ChatModel,
			ImageModel: cfg.Assist.ImageModel,
			VideoModel: cfg.Assist.VideoModel,
			EditModel:  cfg.Assist.EditModel,
		})
		if err != nil {
			logging.BootError("assist unavailable: %v", err)
		} else {
			deps.Completer = svc
			deps.Images = svc
			deps.Editor = svc
			deps.Video = svc
			deps.Shelters = svc
		}
	} else {
		logging.Boot("no Gemini key configured; generative features disabled")
	}

	if cfg.Geo.APIKey != "" {
		amap, err := geo.NewAMapClientWithConfig(geo.AMapConfig{
			APIKey:  cfg.Geo.APIKey,
			BaseURL: cfg.Geo.BaseURL,
			Timeout: cfg.GetGeoTimeout(),
		})
		if err != nil {
			logging.BootError("geo unavailable: %v", err)
		} else {
			deps.Geo = amap
		}
	}

	// Hot-reload preference changes from the config file while running.
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go func() {
		err := config.Watch(watchCtx, configPath, func(fresh *config.Config) {
			if gate, ok := deps.Gate.(*assist.KeyGate); ok && fresh.Assist.APIKey != "" {
				gate.SetKey(fresh.Assist.APIKey)
			}
		})
		if err != nil && watchCtx.Err() == nil {
			logging.BootError("config watch: %v", err)
		}
	}()

	program := tea.NewProgram(ui.NewAppModel(deps), tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	logging.Boot("pawpal exiting")
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to config file")

	searchCmd.Flags().String("size", "", "filter by size (small, medium, large)")
	searchCmd.Flags().StringSlice("personality", nil, "filter by personality tags (all must match)")

	rootCmd.AddCommand(petsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
