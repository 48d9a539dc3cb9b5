package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/credlens/credlens/internal/advising"
	"github.com/credlens/credlens/internal/analysis"
	"github.com/credlens/credlens/internal/document"
	"github.com/credlens/credlens/internal/scoring"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// Optional .env with the advisor credential; absence is fine
	godotenv.Load()

	fs := ff.NewFlagSet("credlens")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "credlens.db", "Database file path")
		storagePath = fs.StringLong("storage", "./documents", "Staged document directory path")
		weightsPath = fs.StringLong("weights", "weights.json", "Scoring model weights artifact")
		scalerPath  = fs.StringLong("scaler", "scaler.json", "Normalization parameters artifact")
		advisorType = fs.StringLong("advisor", "gemini", "Advisor type: 'gemini', 'ollama' or 'off'")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llama3", "Ollama model name (e.g., llama3, mistral)")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("CREDLENS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Scoring artifacts are loaded once here and shared read-only by every
	// request. A missing weights artifact disables the scoring endpoints
	// only; a missing scaler degrades normalization to the identity.
	var model *scoring.Model
	if _, err := os.Stat(*weightsPath); err != nil {
		slog.Warn("Weights artifact not found, scoring endpoints disabled", "path", *weightsPath)
	} else {
		var err error
		model, err = scoring.Load(*weightsPath)
		if err != nil {
			slog.Error("Failed to load scoring model", "path", *weightsPath, "error", err)
			os.Exit(1)
		}
		slog.Info("Scoring model loaded", "path", *weightsPath)
	}

	var scaler *scoring.Scaler
	if _, err := os.Stat(*scalerPath); err != nil {
		slog.Warn("Normalization parameters not found, using identity normalization", "path", *scalerPath)
	} else {
		var err error
		scaler, err = scoring.LoadScaler(*scalerPath)
		if err != nil {
			slog.Error("Failed to load normalization parameters", "path", *scalerPath, "error", err)
			os.Exit(1)
		}
		slog.Info("Normalization parameters loaded", "path", *scalerPath)
	}

	slog.Info("Initializing database...")
	db, err := analysis.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// The advisor is best-effort; a missing credential disables it without
	// touching extraction or scoring.
	var advisor advising.Advisor
	switch *advisorType {
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Warn("No Gemini API key configured, advice disabled. Set --gemini-key or GEMINI_API_KEY")
		} else {
			slog.Info("Initializing Gemini advisor...", "model", *geminiModel)
			advisor, err = advising.NewGemini(apiKey, *geminiModel)
			if err != nil {
				slog.Error("Failed to initialize Gemini", "error", err)
				os.Exit(1)
			}
		}
	case "ollama":
		slog.Info("Initializing Ollama advisor...", "url", *ollamaURL, "model", *ollamaModel)
		advisor, err = advising.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	case "off":
		slog.Info("Advisor disabled")
	default:
		slog.Error("Invalid advisor type", "type", *advisorType, "valid", "gemini, ollama or off")
		os.Exit(1)
	}
	if advisor != nil {
		defer advisor.Close()
	}

	slog.Info("Initializing storage...")
	store, err := analysis.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	service := analysis.NewService(db, store, document.PDFConverter{}, advisor, model, scaler)

	basicAuth := analysis.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := analysis.NewServer(service, basicAuth)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
