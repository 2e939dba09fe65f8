package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rogersnm/dolphin/internal/api"
	"github.com/rogersnm/dolphin/internal/config"
	"github.com/rogersnm/dolphin/internal/credstore"
	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/token"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	dataDir string
	cfg     *config.Config
	tokens  *token.Provider
	client  *api.Client
	logger  zerolog.Logger

	apiURLFlag  string
	debugFlag   bool
	metricsFile string
	registry    *prometheus.Registry
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dolphin")
	}
	return filepath.Join(home, ".dolphin")
}

var rootCmd = &cobra.Command{
	Use:     "dolphin",
	Short:   "Manage the Dolphin site content: services, features, FAQs, reviews and settings",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Resolve(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if apiURLFlag != "" {
			cfg.APIURL = apiURLFlag
		}
		if debugFlag {
			cfg.LogLevel = "debug"
		}
		logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

		var opts []token.Option
		if cfg.RequireJWT {
			opts = append(opts, token.WithJWTOnly())
		}
		tokens = token.New(credstore.NewFileStore(dataDir), cfg.TokenKeys, opts...)

		registry = prometheus.NewRegistry()
		errOut := cmd.ErrOrStderr()
		client = api.New(api.Config{
			BaseURL: cfg.APIURL,
			Timeout: cfg.Timeout,
			Tokens:  tokens,
			OnUnauthorized: func() {
				fmt.Fprintln(errOut, markdown.RenderFailure("Session expired or not signed in. Run: dolphin auth login"))
			},
			Logger:  &logger,
			Metrics: api.NewMetrics(registry),
		})
		logger.Debug().Str("api_url", cfg.APIURL).Dur("timeout", cfg.Timeout).Msg("client ready")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if metricsFile == "" || registry == nil {
			return nil
		}
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "API base URL (overrides config and DOLPHIN_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log every API request")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus request metrics to this file on exit")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"auth login": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Bearer token, when --token is not given and stdin is not a terminal",
				},
				Examples: []mtp.Example{
					{Description: "Log in with a token", Command: "dolphin auth login --token eyJhbGciOi..."},
					{Description: "Log in with a piped token", Command: "cat token.txt | dolphin auth login"},
				},
			},
			"services list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of services with ID, English and Arabic title, image marker and update date",
				},
			},
			"services create": {
				Examples: []mtp.Example{
					{Description: "Create a service with an image", Command: "dolphin services create --title-en \"Web Design\" --title-ar \"تصميم المواقع\" --description-en \"...\" --description-ar \"...\" --image ./web.png"},
					{Description: "Create a service from a draft file", Command: "dolphin services create --from web-design.md"},
				},
			},
			"services update": {
				Examples: []mtp.Example{
					{Description: "Change the English title", Command: "dolphin services update 12 --title-en \"Web Development\""},
					{Description: "Replace the image", Command: "dolphin services update 12 --image ./new.png"},
				},
			},
			"services delete": {
				Examples: []mtp.Example{
					{Description: "Delete a service (interactive confirm)", Command: "dolphin services delete 12"},
					{Description: "Delete a service (skip confirm)", Command: "dolphin services delete 12 --force"},
				},
			},
			"features create": {
				Examples: []mtp.Example{
					{Description: "Create a feature", Command: "dolphin features create --title-en Fast --title-ar سريع --description-en \"...\" --description-ar \"...\""},
				},
			},
			"faqs create": {
				Examples: []mtp.Example{
					{Description: "Create a FAQ entry", Command: "dolphin faqs create --question-en \"How long?\" --question-ar \"كم المدة؟\" --answer-en \"Two weeks\" --answer-ar \"أسبوعان\""},
					{Description: "Create several FAQ entries from a file with an items list", Command: "dolphin faqs create --from faqs.md"},
				},
			},
			"reviews create": {
				Examples: []mtp.Example{
					{Description: "Create a review with a photo", Command: "dolphin reviews create --name-en Sara --name-ar سارة --description-en Great --description-ar رائع --image ./sara.jpg"},
				},
			},
			"dashboard": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Totals of reviews, services and FAQs, and the three latest reviews",
				},
			},
			"settings show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Site name, contact details and social links",
				},
			},
			"settings save": {
				Examples: []mtp.Example{
					{Description: "Change the contact email", Command: "dolphin settings save --email hello@example.com"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
