// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/policyatlas"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/facts"
	"github.com/poiesic/policyatlas/ingestion"
)

func main() {
	app := &cli.App{
		Name:  "policyatlas",
		Usage: "Ingest, search, and question telehealth policy documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML configuration file",
				EnvVars: []string{"POLICYATLAS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				EnvVars: []string{"POLICYATLAS_DB"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest policy documents into the atlas",
				ArgsUsage: "<files...>",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "delete-after",
						Usage: "Delete source files after successful ingestion",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search ingested documents by similarity",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "region",
						Aliases: []string{"r"},
						Usage:   "Restrict the search to the named regions",
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question over the ingested documents",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "region",
						Aliases: []string{"r"},
						Usage:   "Restrict retrieval to the named regions",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show documents and their processing status",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "state",
						Usage: "Filter by lifecycle state (processing, completed, failed)",
					},
				},
			},
			{
				Name:   "facts",
				Usage:  "Dump extracted facts for a document or region",
				Action: factsCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "document",
						Usage: "Document ID to dump facts for",
					},
					&cli.StringFlag{
						Name:  "region",
						Usage: "Region name to dump facts for",
					},
				},
			},
			{
				Name:   "reextract",
				Usage:  "Re-run fact extraction over all completed documents",
				Action: reextractCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of documents to extract concurrently",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed extractions",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 2 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	// A .env file is optional; flags fall back to real environment values.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env file: %w", err)
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openAtlas resolves configuration and opens the composition root.
func openAtlas(c *cli.Context, opts ...policyatlas.Option) (*policyatlas.Atlas, error) {
	config, err := loadFileConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	dbPath := c.String("db")
	if dbPath == "" {
		dbPath = config.DB
	}
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required (--db flag, POLICYATLAS_DB, or config file)")
	}

	aiConfig, err := config.aiConfig()
	if err != nil {
		return nil, err
	}

	return policyatlas.Open(c.Context, dbPath, append([]policyatlas.Option{policyatlas.WithAIConfig(aiConfig)}, opts...)...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	atlas, err := openAtlas(c)
	if err != nil {
		return err
	}
	defer atlas.Close()

	ctx := c.Context
	ids := make([]core.ID, 0, c.NArg())

	for _, path := range c.Args().Slice() {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		fileName := filepath.Base(path)
		regionName, regionCode := regionFromFilename(fileName)

		region, err := atlas.Regions().GetOrCreateRegion(ctx, regionName, regionCode)
		if err != nil {
			return fmt.Errorf("creating region for %s: %w", fileName, err)
		}

		doc, err := atlas.Documents().AddDocument(ctx, &core.Document{
			RegionId:  region.Id,
			Title:     strings.TrimSuffix(fileName, filepath.Ext(fileName)),
			Filename:  fileName,
			SizeBytes: info.Size(),
			Status:    core.StatusProcessing,
		})
		if err != nil {
			return fmt.Errorf("creating document for %s: %w", fileName, err)
		}

		if err := atlas.EnqueueIngestion(&ingestion.Job{
			DocumentId:      doc.Id,
			FilePath:        path,
			DeleteFileAfter: c.Bool("delete-after"),
		}); err != nil {
			return fmt.Errorf("enqueuing %s: %w", fileName, err)
		}

		ids = append(ids, doc.Id)
		fmt.Fprintf(os.Stderr, "Enqueued %s (document %d, region %s)\n", fileName, doc.Id, region.Name)
	}

	atlas.WaitForIngestion()

	for _, id := range ids {
		doc, err := atlas.Documents().GetDocument(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%d\t%s\t%s\n", doc.Id, doc.Status, doc.Filename)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one query argument is required")
	}

	atlas, err := openAtlas(c)
	if err != nil {
		return err
	}
	defer atlas.Close()

	results, err := atlas.HybridSearch(c.Context, c.Args().First(), c.StringSlice("region"), c.Int("top-k"))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matching chunks found.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("[%d] %.3f  %s / %s (page %d)\n", i+1, result.Similarity, result.RegionName, result.DocumentTitle, result.PageNumber)
		fmt.Printf("    %s\n\n", snippet(result.Content, 200))
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one question argument is required")
	}

	atlas, err := openAtlas(c)
	if err != nil {
		return err
	}
	defer atlas.Close()

	response, err := atlas.Answer(c.Context, c.Args().First(), c.StringSlice("region"), nil)
	if err != nil {
		return err
	}

	fmt.Println(response.Answer)
	fmt.Printf("\nConfidence: %.2f\n", response.Confidence)

	if len(response.Citations) > 0 {
		fmt.Println("\nSources:")
		for i, citation := range response.Citations {
			fmt.Printf("  [%d] %s / %s (page %d)\n", i+1, citation.RegionName, citation.DocumentTitle, citation.PageNumber)
		}
	}
	if len(response.SuggestedQueries) > 0 {
		fmt.Println("\nTry asking:")
		for _, suggestion := range response.SuggestedQueries {
			fmt.Printf("  - %s\n", suggestion)
		}
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	atlas, err := openAtlas(c)
	if err != nil {
		return err
	}
	defer atlas.Close()

	ctx := c.Context
	var documents []*core.Document

	if state := c.String("state"); state != "" {
		documents, err = atlas.Documents().ListDocumentsByStatus(ctx, core.DocumentStatus(state))
	} else {
		documents, err = atlas.Documents().ListDocuments(ctx, 0)
	}
	if err != nil {
		return err
	}

	if len(documents) == 0 {
		fmt.Println("No documents.")
		return nil
	}

	fmt.Printf("%-6s %-12s %-24s %s\n", "ID", "STATUS", "UPLOADED", "FILENAME")
	for _, doc := range documents {
		fmt.Printf("%-6d %-12s %-24s %s\n", doc.Id, doc.Status, doc.UploadedAt.Format(time.RFC3339), doc.Filename)
	}
	return nil
}

func factsCommand(c *cli.Context) error {
	documentID := c.Uint64("document")
	regionName := c.String("region")
	if (documentID == 0) == (regionName == "") {
		return fmt.Errorf("exactly one of --document or --region is required")
	}

	atlas, err := openAtlas(c)
	if err != nil {
		return err
	}
	defer atlas.Close()

	ctx := c.Context
	var rows []*core.Fact

	if documentID != 0 {
		rows, err = atlas.Facts().GetFactsByDocument(ctx, core.ID(documentID))
	} else {
		region, regionErr := atlas.Regions().GetRegionByName(ctx, regionName)
		if regionErr != nil {
			return regionErr
		}
		rows, err = atlas.Facts().GetFactsByRegion(ctx, region.Id)
	}
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No facts.")
		return nil
	}

	for _, fact := range rows {
		fmt.Printf("%-20s %-28s %.2f  p%-4d %s\n", fact.Category, fact.Field, fact.Confidence, fact.PageNumber, fact.Value)
	}
	return nil
}

func reextractCommand(c *cli.Context) error {
	atlas, err := openAtlas(c)
	if err != nil {
		return err
	}
	defer atlas.Close()

	batch, err := atlas.NewBatchExtractor(
		facts.WithPoolSize(c.Int("pool-size")),
		facts.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		facts.WithProgressWriter(os.Stderr),
	)
	if err != nil {
		return err
	}
	defer batch.Release()

	processed, failed, err := batch.ExtractAllCompleted(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Re-extracted facts for %d documents (%d failed)\n", processed, failed)
	if failed > 0 {
		return fmt.Errorf("%d documents failed extraction", failed)
	}
	return nil
}

func snippet(content string, limit int) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) <= limit {
		return content
	}
	return content[:limit] + "..."
}
