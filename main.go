package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	coordinatorx "github.com/wirelimit/visara/agent/coordinator"
	llmx "github.com/wirelimit/visara/agent/llm"
	rolesx "github.com/wirelimit/visara/agent/roles"
	statex "github.com/wirelimit/visara/agent/state"
	configx "github.com/wirelimit/visara/pkg/config"
	_ "github.com/wirelimit/visara/pkg/logger/autoload"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("GEMINI")
	gateway, err := llmx.NewGateway(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize generation gateway")
	}

	store := statex.NewMemoryStore()
	session, err := store.LoadOrCreate(ctx, uuid.NewString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session")
	}

	registry, err := rolesx.NewRegistry(session, gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build role registry")
	}

	coord, err := coordinatorx.New(session, registry, gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build coordinator")
	}

	log.Info().Str("session_id", session.SessionID).Msg("session started")
	runREPL(ctx, coord, session)
}

// runREPL is the caller surface: it serializes turns, uploads images,
// and owns appending each completed turn to the interaction log.
func runREPL(ctx context.Context, coord *coordinatorx.Coordinator, session *statex.SessionState) {
	fmt.Println("Visara multi-modal agent. Commands: /image <path>, /status, /capabilities, /history, /reset, /quit")

	var pendingImage *statex.ImageHandle
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if pendingImage != nil {
			fmt.Printf("[image: %s] > ", pendingImage.Name)
		} else {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return

		case line == "/status":
			printJSON(coord.SystemStatus())
			continue

		case line == "/capabilities":
			printJSON(coord.CapabilitiesSummary())
			continue

		case line == "/history":
			printJSON(session.RecentHistory(5))
			continue

		case line == "/reset":
			coord.Reset()
			pendingImage = nil
			fmt.Println("Session cleared.")
			continue

		case strings.HasPrefix(line, "/image "):
			img, err := loadImage(strings.TrimSpace(strings.TrimPrefix(line, "/image ")))
			if err != nil {
				fmt.Printf("Could not load image: %v\n", err)
				continue
			}
			stored := session.AddUploadedImage(img, time.Now())
			pendingImage = &stored
			fmt.Printf("Image %s attached to the next turn.\n", stored.Name)
			continue
		}

		result := coord.ProcessTurn(ctx, line, pendingImage)
		fmt.Println(result.Reply)

		session.AddInteraction(line, result.Reply, result.RolesUsed, pendingImage != nil, time.Now())
		pendingImage = nil
	}
}

func loadImage(path string) (statex.ImageHandle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return statex.ImageHandle{}, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if !strings.HasPrefix(mimeType, "image/") {
		return statex.ImageHandle{}, fmt.Errorf("unsupported image type for %s", path)
	}

	return statex.NewImage(filepath.Base(path), mimeType, data), nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
