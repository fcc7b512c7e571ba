// Package main provides the pawpaw command, a headless form-filling
// assistant. It opens a page (or a standalone HTML file), extracts the
// fillable fields, asks an LLM to map values from a source document onto
// them, applies the mappings, and writes a JSON report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/assistant"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/browser"
	appconfig "github.com/yehiashouman/pawpaw-form-filler/pkg/config"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/document"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/llm/tokenizer"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/resolver"
)

const (
	version      = "0.1.0"
	defaultModel = "gpt-4o"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	URL          string
	HTMLFile     string
	DocumentPath string
	APIKey       string
	BaseURL      string
	Model        string
	Headed       bool
	DryRun       bool
	Screenshot   bool
	OutputFile   string
	Timeout      time.Duration
	AllowSites   string
	DenySites    string
	CopyReport   bool
	ShowVersion  bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("pawpaw v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Printf("Fill failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	config := &CLIConfig{}

	flag.StringVar(&config.URL, "url", "", "URL of the page to fill")
	flag.StringVar(&config.HTMLFile, "html", "", "Path to a standalone HTML file to fill (no browser)")
	flag.StringVar(&config.DocumentPath, "document", "", "Path to the source document (.pdf, .yaml, .md, .txt) (required)")
	flag.StringVar(&config.APIKey, "api-key", "", "OpenAI API key (falls back to config file, then OPENAI_API_KEY)")
	flag.StringVar(&config.BaseURL, "base-url", "", "OpenAI API base URL")
	flag.StringVar(&config.Model, "model", "", "LLM model to use")
	flag.BoolVar(&config.Headed, "headed", false, "Run the browser with a visible window")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Resolve mappings but do not write them into the page")
	flag.BoolVar(&config.Screenshot, "screenshot", false, "Attach a page screenshot to the model request")
	flag.StringVar(&config.OutputFile, "output", "", "Write the JSON report (or filled HTML for -html) to this file instead of stdout")
	flag.DurationVar(&config.Timeout, "timeout", 3*time.Minute, "Overall execution timeout")
	flag.StringVar(&config.AllowSites, "allow-site", "", "Comma-separated glob patterns of allowed sites")
	flag.StringVar(&config.DenySites, "deny-site", "", "Comma-separated glob patterns of denied sites")
	flag.BoolVar(&config.CopyReport, "copy-report", false, "Copy the JSON report to the clipboard")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pawpaw - LLM-assisted form filler\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pawpaw [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Fill a live page from a resume\n")
		fmt.Fprintf(os.Stderr, "  pawpaw -url https://example.com/apply -document resume.pdf\n\n")
		fmt.Fprintf(os.Stderr, "  # Preview mappings without touching the page\n")
		fmt.Fprintf(os.Stderr, "  pawpaw -url https://example.com/apply -document profile.yaml -dry-run\n\n")
		fmt.Fprintf(os.Stderr, "  # Fill a saved HTML form offline\n")
		fmt.Fprintf(os.Stderr, "  pawpaw -html form.html -document profile.yaml -output filled.html\n\n")
	}

	flag.Parse()
	return config
}

// run executes one fill pass
func run(ctx context.Context, cliConfig *CLIConfig) error {
	if cliConfig.DocumentPath == "" {
		return fmt.Errorf("a source document is required (-document)")
	}
	if cliConfig.URL == "" && cliConfig.HTMLFile == "" {
		return fmt.Errorf("either -url or -html is required")
	}
	if cliConfig.URL != "" && cliConfig.HTMLFile != "" {
		return fmt.Errorf("-url and -html are mutually exclusive")
	}

	if initErr := appconfig.Initialize(""); initErr != nil {
		return fmt.Errorf("failed to initialize configuration: %w", initErr)
	}

	if cliConfig.AllowSites != "" || cliConfig.DenySites != "" {
		policy := appconfig.GetSitePolicy()
		if policy == nil {
			return fmt.Errorf("site policy configuration unavailable")
		}
		if err := policy.SetPatterns(splitPatterns(cliConfig.AllowSites), splitPatterns(cliConfig.DenySites)); err != nil {
			return fmt.Errorf("invalid site pattern: %w", err)
		}
	}

	provider, err := appconfig.BuildProvider(cliConfig.Model, cliConfig.BaseURL, cliConfig.APIKey, defaultModel)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	doc, err := document.Load(cliConfig.DocumentPath)
	if err != nil {
		return fmt.Errorf("failed to load source document: %w", err)
	}

	resolverOpts := []resolver.Option{}
	if tok, tokErr := tokenizer.New(); tokErr == nil {
		resolverOpts = append(resolverOpts, resolver.WithTokenizer(tok))
	}
	res := resolver.New(provider, resolverOpts...)

	asst := assistant.New(res, assistant.Options{
		DryRun:     cliConfig.DryRun,
		Screenshot: cliConfig.Screenshot,
	})

	if cliConfig.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliConfig.Timeout)
		defer cancel()
	}

	var report *assistant.Report
	if cliConfig.HTMLFile != "" {
		report, err = fillHTMLFile(ctx, asst, cliConfig, doc.Text)
	} else {
		report, err = fillURL(ctx, asst, cliConfig, doc.Text)
	}
	if err != nil {
		return err
	}

	return writeReport(report, cliConfig)
}

// fillURL drives a live browser session against cliConfig.URL.
func fillURL(ctx context.Context, asst *assistant.Assistant, cliConfig *CLIConfig, documentText string) (*assistant.Report, error) {
	manager := browser.NewManager()
	if err := manager.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			log.Printf("browser shutdown: %v", err)
		}
	}()

	session, err := manager.StartSession("fill", browser.SessionOptions{
		Headless: !cliConfig.Headed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	if err := session.Navigate(cliConfig.URL, browser.NavigateOptions{
		WaitUntil: "networkidle",
	}); err != nil {
		return nil, err
	}

	return asst.FillSession(ctx, session, documentText)
}

// fillHTMLFile fills a saved HTML document without a browser.
func fillHTMLFile(ctx context.Context, asst *assistant.Assistant, cliConfig *CLIConfig, documentText string) (*assistant.Report, error) {
	data, err := os.ReadFile(cliConfig.HTMLFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file: %w", err)
	}
	return asst.FillHTML(ctx, string(data), documentText)
}

// writeReport emits the report as JSON, plus the filled HTML for offline
// fills when an output file is given.
func writeReport(report *assistant.Report, cliConfig *CLIConfig) error {
	filled := report.FilledHTML
	report.FilledHTML = ""

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if cliConfig.CopyReport {
		if err := clipboard.WriteAll(string(data)); err != nil {
			log.Printf("failed to copy report to clipboard: %v", err)
		}
	}

	if cliConfig.OutputFile == "" {
		fmt.Println(string(data))
		if filled != "" {
			fmt.Println(filled)
		}
		return nil
	}

	// For offline fills the output file holds the filled document itself;
	// the report still goes to stdout.
	if filled != "" {
		fmt.Println(string(data))
		return os.WriteFile(cliConfig.OutputFile, []byte(filled), 0600)
	}
	return os.WriteFile(cliConfig.OutputFile, data, 0600)
}

func splitPatterns(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}
