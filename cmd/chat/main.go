// Command chat runs the shopping assistant as a terminal conversation
// against the in-process engine, without the HTTP layer.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	catalogRepo "shopbot-backend/internal/domains/catalog/repository"
	catalogService "shopbot-backend/internal/domains/catalog/service"
	"shopbot-backend/internal/domains/conversation/engine"
	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/infrastructure/llm"
	"shopbot-backend/pkg/logger"
)

func main() {
	debug := flag.Bool("debug", false, "log engine traces")
	catalogPath := flag.String("catalog", "data/catalog.json", "path to the product catalog")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}
	logger.Init(getEnv("APP_ENV", "development"), *debug)

	if err := run(*catalogPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(catalogPath string) error {
	store, err := catalogRepo.NewJSONStore(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	provider := llm.DetectProvider(os.Getenv("LLM_PROVIDER"))
	client, err := llm.NewClient(llm.Config{
		Provider: provider,
		Model:    os.Getenv("LLM_MODEL"),
		APIKey:   llm.APIKeyFromEnv(provider),
	})
	if err != nil {
		return fmt.Errorf("set %s to talk to the %s API: %w", llm.APIKeyEnvVar(provider), provider, err)
	}

	eng := engine.NewEngine(catalogService.NewCatalogService(store), client)
	state := model.NewConversationState("")
	ctx := context.Background()

	// First turn prints the greeting before the user types anything.
	reply, err := eng.Advance(ctx, state, "hello")
	if err != nil {
		return err
	}
	fmt.Printf("Assistant: %s\n\n", reply)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		reply, err := eng.Advance(ctx, state, input)
		if err != nil {
			return err
		}
		fmt.Printf("\nAssistant: %s\n\n", reply)

		if isFarewell(input) {
			break
		}
	}
	return scanner.Err()
}

func isFarewell(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit", "bye", "goodbye":
		return true
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
