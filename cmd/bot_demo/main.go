package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mvgbot/internal/bot"
	"mvgbot/internal/mvg"
	"mvgbot/internal/nlu"
)

// Console REPL against the live NLU and MVG backends; no Redis or
// Postgres required.
func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	recognizer, err := nlu.NewGeminiRecognizer(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize recognizer: %v", err)
	}
	defer recognizer.Close()

	provider := mvg.NewClient("https://www.mvg.de/api/fahrinfo")

	tz, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	engine := bot.New(bot.Deps{
		Recognizer: recognizer,
		Searcher:   provider,
		Querier:    provider,
		Timezone:   tz,
	})
	bot.RegisterBuiltins(engine)

	fmt.Println("MVG assistant demo. Type a message, or 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		for _, msg := range engine.HandleTurn(ctx, "demo", line) {
			fmt.Println(msg)
		}
	}
}
