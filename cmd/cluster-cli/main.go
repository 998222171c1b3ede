package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"article-clustering/internal/di"
	"article-clustering/internal/domain"
	"article-clustering/internal/infra/config"
)

var (
	version = "dev"

	// Global flags
	verbose bool

	// Run command flags
	inputFile string
	backend   string
	timeout   time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "cluster-cli",
	Short:   "Cluster article batches by topic",
	Version: version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the clustering pipeline on a batch of articles",
	Long: `Run the clustering pipeline on a JSON file of {id, title, excerpt}
records, or on the built-in sample batch when no file is given.`,
	RunE: runClustering,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	runCmd.Flags().StringVarP(&inputFile, "file", "f", "", "JSON file with an array of articles (default: built-in sample)")
	runCmd.Flags().StringVar(&backend, "backend", "tfidf", "embedding backend: ollama or tfidf")
	runCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall run timeout")
	rootCmd.AddCommand(runCmd)
}

func runClustering(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	articles, err := loadArticles(inputFile)
	if err != nil {
		return err
	}

	cfg := config.Load()
	cfg.Embedder.Backend = backend
	components, err := di.NewApplicationComponents(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := components.ClusterUsecase.Execute(ctx, articles)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	printResult(result)
	return nil
}

func loadArticles(path string) ([]domain.ArticleInput, error) {
	if path == "" {
		return sampleArticles(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var articles []domain.ArticleInput
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return articles, nil
}

func printResult(result *domain.PipelineResult) {
	fmt.Println("Clustering result:")
	if result.ShortCircuit {
		fmt.Printf("  %s\n", result.Message)
		return
	}
	fmt.Printf("  Total articles: %d\n", result.TotalArticles)
	fmt.Printf("  Clustered: %d\n", result.ClusteredArticles)
	fmt.Printf("  Clusters: %d\n", len(result.Clusters))
	for _, c := range result.Clusters {
		fmt.Printf("    - %s: %d articles, keywords: [%s]\n",
			c.TopicName, c.Size, strings.Join(c.Keywords, ", "))
	}
	if len(result.UnclusteredIDs) > 0 {
		fmt.Printf("  Unclustered: %s\n", strings.Join(result.UnclusteredIDs, ", "))
	}
}

func sampleArticles() []domain.ArticleInput {
	return []domain.ArticleInput{
		{ID: "1", Title: "Macron annonce une réforme des retraites", Excerpt: "Le président a présenté son projet de loi sur les retraites."},
		{ID: "2", Title: "Retraites : les syndicats appellent à la grève", Excerpt: "Une journée de mobilisation nationale est prévue."},
		{ID: "3", Title: "Le climat se réchauffe plus vite que prévu", Excerpt: "Les scientifiques alertent sur l'accélération du changement climatique."},
		{ID: "4", Title: "COP28 : les négociations sur le climat s'intensifient", Excerpt: "Les pays tentent de trouver un accord sur les énergies fossiles."},
		{ID: "5", Title: "Économie : la BCE maintient ses taux", Excerpt: "La banque centrale européenne a décidé de ne pas modifier ses taux directeurs."},
	}
}
