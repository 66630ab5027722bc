// README: Interactive chat demo; runs the full pipeline offline on templates.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"roam/internal/ai"
	"roam/internal/amadeus"
	"roam/internal/maps"
	"roam/internal/modules/session"
	"roam/internal/service"
	"roam/internal/travel"
)

// Runs the chat pipeline without Postgres or any API keys. Set GEMINI_API_KEY
// to get model-backed narratives instead of templates.
func main() {
	ctx := context.Background()

	var provider ai.Provider
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		gemini, err := ai.NewGeminiProvider(ctx, key)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		provider = gemini
	}

	places, err := maps.NewPlacesService(os.Getenv("GOOGLE_API_KEY"))
	if err != nil {
		log.Fatalf("places init: %v", err)
	}
	store, err := session.NewLRUStore()
	if err != nil {
		log.Fatalf("session store init: %v", err)
	}

	amadeusClient := amadeus.NewClient(
		os.Getenv("AMADEUS_API_KEY"),
		os.Getenv("AMADEUS_API_SECRET"),
		os.Getenv("AMADEUS_ENV"),
		nil,
	)

	chat := service.NewChatService(service.ChatConfig{
		Provider: provider,
		Builder:  travel.NewBuilder(amadeusClient, places, nil),
		Places:   places,
		Sessions: session.NewManager(store),
	})

	fmt.Println("Roam chat demo. Try: \"Plan a trip from Zagreb to London\". Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		res, err := chat.Handle(ctx, service.ChatCommand{
			SessionID: "demo",
			Message:   line,
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("[%s/%s]\n%s\n\n", res.Intent, res.Language, res.Reply)
	}
}
