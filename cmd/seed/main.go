package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"docstudio/internal/catalog"
	"docstudio/internal/config"
	docgenSvc "docstudio/internal/domain/services/docgen"
	"docstudio/internal/repository/postgres"
	postgresDocgen "docstudio/internal/repository/postgres/docgen"
	serviceDocgen "docstudio/internal/service/docgen"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed rules")
	clearData := flag.Bool("clear-data", false, "Delete all documents and prompt history (keep schema and rules)")
	sampleDocs := flag.Bool("sample-docs", false, "Also create a sample document graph")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for seeding")
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run destructive operations (-drop-tables or -clear-data) in production")
	}

	logger := config.NewLogger(os.Stdout, false)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("Clearing documents and prompt history...")
		if err := clearDocuments(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	ruleRepo := postgresDocgen.NewRuleRepository(repoConfig)

	rules := cat.Rules()
	for i := range rules {
		if err := ruleRepo.Upsert(ctx, &rules[i]); err != nil {
			log.Fatalf("Failed to upsert rule %s: %v", rules[i].RuleID, err)
		}
		log.Printf("Rule %d/%d: %s (%s)", i+1, len(rules), rules[i].RuleName, rules[i].RuleID)
	}

	if *sampleDocs {
		docService := serviceDocgen.NewDocumentService(
			postgresDocgen.NewDocumentRepository(repoConfig),
			postgres.NewTransactionManager(pool, logger),
			logger,
		)
		if err := seedSampleGraph(ctx, docService, cfg.DefaultAuthor); err != nil {
			log.Fatalf("Failed to seed sample documents: %v", err)
		}
	}

	log.Println("Seeding complete")
}

// clearDocuments deletes history before documents to respect foreign keys
func clearDocuments(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.PromptHistory, tables.Documents} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// seedSampleGraph creates a root document with two revisions
func seedSampleGraph(ctx context.Context, docs docgenSvc.DocumentService, author string) error {
	root, err := docs.UpdateDocument(ctx, &docgenSvc.UpdateDocumentRequest{
		Name:    "Get user profile",
		Author:  author,
		DocData: "# Get user profile\n\n`POST /users/profile` returns the public profile of a user.\n",
	})
	if err != nil {
		return err
	}

	revision, err := docs.UpdateDocument(ctx, &docgenSvc.UpdateDocumentRequest{
		DocID:   root.ID,
		Name:    "Get user profile",
		Author:  author,
		DocData: "# Get user profile\n\n`POST /users/profile` returns the public profile of a user.\n\n## Errors\n\n- `404` when the user does not exist\n",
	})
	if err != nil {
		return err
	}

	log.Printf("Sample graph: root %s, latest %s (version %d)", root.ID, revision.ID, revision.Version)
	return nil
}
