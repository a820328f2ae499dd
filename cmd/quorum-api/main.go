package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/PabloGalante/quorum-agent/internal/adapters/http"
	"github.com/PabloGalante/quorum-agent/internal/adapters/identity"
	"github.com/PabloGalante/quorum-agent/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/quorum-agent/internal/adapters/storage/firestore"
	filestore "github.com/PabloGalante/quorum-agent/internal/adapters/storage/file"
	memstore "github.com/PabloGalante/quorum-agent/internal/adapters/storage/memory"
	sqlitestore "github.com/PabloGalante/quorum-agent/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/quorum-agent/internal/app/assistant"
	"github.com/PabloGalante/quorum-agent/internal/app/boardroom"
	"github.com/PabloGalante/quorum-agent/internal/app/creative"
	"github.com/PabloGalante/quorum-agent/internal/config"
	"github.com/PabloGalante/quorum-agent/internal/domain"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quorum-api",
	Short: "Boardroom deliberation service",
	Long: `quorum-api runs a boardroom simulation: a roster of expert personas
deliberates user proposals over multiple rounds and a chair synthesizes
the final decision. It also serves an assistant that answers questions
in general mode or scoped to one recorded deliberation.`,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(historyCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the persona roster",
	RunE:  runPersonas,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored deliberations",
	RunE:  runHistory,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	registry, err := config.LoadRoster(cfg.RosterPath)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	// Choose between mock and Gemini by ENV (useful for dev)
	var llmClient domain.LLMClient
	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Println("[LLM] Using Gemini LLM client")
		llmClient, err = llm.NewGeminiClient(ctx, cfg.ModelName)
		if err != nil {
			return fmt.Errorf("initializing Gemini LLM client: %w", err)
		}
	}

	history, err := newHistoryStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing history store: %w", err)
	}
	defer closeIfCloser(history)

	chat := memstore.NewChatLog()

	orchestrator := boardroom.NewOrchestrator(llmClient, registry, history, cfg.ModelName, cfg.ThinkingBudget)
	router := assistant.NewRouter(llmClient, registry, chat, nil, cfg.ModelName)
	generator := creative.NewGenerator(llmClient, chat, cfg.ModelName, cfg.ImageModelName)

	handler := httpadapter.NewServer(orchestrator, router, generator, history, chat, identity.NewStaticProvider())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Println("Quorum API listening on port:", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runPersonas(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	registry, err := config.LoadRoster(cfg.RosterPath)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTITLE")
	for _, p := range registry.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.DisplayName, p.Title)
	}
	return w.Flush()
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	history, err := newHistoryStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("initializing history store: %w", err)
	}
	defer closeIfCloser(history)

	list, err := history.List()
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tMODE\tMINUTES\tSTATUS")
	for _, d := range list {
		status := "decided"
		if d.Failed() {
			status = "failed"
		} else if d.FinalDecision == "" {
			status = "pending"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			d.ID, d.CreatedAt.Format(time.RFC3339), d.Mode, len(d.Minutes), status)
	}
	return w.Flush()
}

// newHistoryStore picks the storage backend from config.
func newHistoryStore(ctx context.Context, cfg *config.Config) (domain.HistoryStore, error) {
	switch cfg.StorageBackend {
	case "firestore":
		if cfg.GCPProjectID == "" {
			return nil, fmt.Errorf("QUORUM_GCP_PROJECT is required for the Firestore backend")
		}
		log.Printf("[STORE] Using Firestore history (project=%s)", cfg.GCPProjectID)
		return firestorestore.NewStore(ctx, cfg.GCPProjectID)

	case "sqlite":
		log.Printf("[STORE] Using SQLite history (%s)", cfg.HistoryPath)
		return sqlitestore.NewHistoryStore(cfg.HistoryPath)

	case "file":
		log.Printf("[STORE] Using file history (%s)", cfg.HistoryPath)
		return filestore.NewHistoryStore(cfg.HistoryPath)

	default:
		log.Println("[STORE] Using in-memory history")
		return memstore.NewHistoryStore(), nil
	}
}

func closeIfCloser(store domain.HistoryStore) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}
