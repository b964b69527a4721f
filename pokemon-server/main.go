package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pokemon-mcp/internal/battle"
	"pokemon-mcp/internal/buildinfo"
	"pokemon-mcp/internal/config"
	"pokemon-mcp/internal/logger"
	"pokemon-mcp/internal/pokeapi"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type rootOptions struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	logLevel   string
	transport  string
	addr       string
	path       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	serve := func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, opts)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	}

	rootCmd := &cobra.Command{
		Use:   "pokemon-mcp",
		Short: "MCP server exposing PokeAPI lookups and battle predictions",
		Long: `pokemon-mcp serves Pokemon data from PokeAPI as MCP tools.

It can:
  • List, search and look up pokemon by name or id
  • Look up abilities, natures, types, species and other resources
  • Compare two pokemon and predict a battle winner`,
		SilenceUsage: true,
		RunE:         serve,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	pf.StringVar(&opts.baseURL, "base-url", config.DefaultBaseURL, "PokeAPI base URL")
	pf.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "upstream request timeout")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug|info|warn|error")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (default)",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&opts.transport, "transport", "stdio", "transport: stdio|http")
		c.Flags().StringVar(&opts.addr, "addr", ":8080", "HTTP listen address")
		c.Flags().StringVar(&opts.path, "path", "/mcp", "HTTP path for MCP endpoint")
	}

	battleCmd := &cobra.Command{
		Use:   "battle <pokemon1> <pokemon2>",
		Short: "Compare two pokemon and print the prediction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			api := newAPIClient(cfg)
			defer api.Close()
			out, err := buildComparison(cmd.Context(), battle.NewComparator(api), CompareBattleArgs{Name1: args[0], Name2: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <resource> <id-or-name>",
		Short: "Fetch one PokeAPI resource and print it",
		Long:  "Fetch one PokeAPI resource and print it.\n\nResources: " + resourceList(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := pokeapi.ParseResource(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			api := newAPIClient(cfg)
			defer api.Close()
			out, err := buildResource(cmd.Context(), api, kind, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pokemon-mcp v%s\n", buildinfo.Version)
		},
	}

	rootCmd.AddCommand(serveCmd, battleCmd, getCmd, configCmd, versionCmd)
	return rootCmd
}

// loadConfig reads the config file, applies explicitly set flags on top, and
// initializes logging.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, buildinfo.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("transport") {
		cfg.Transport = opts.transport
	}
	if flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if flags.Changed("path") {
		cfg.Path = opts.path
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Init(os.Stderr, level)
	return cfg, nil
}

func newAPIClient(cfg *config.Config) *pokeapi.Client {
	api := pokeapi.NewClient()
	api.BaseURL = cfg.BaseURL
	api.UserAgent = cfg.UserAgent
	api.HTTP.Timeout = cfg.Timeout
	return api
}

// runServer owns the shared PokeAPI client for the life of the process and
// releases it on every exit path, including SIGINT/SIGTERM.
func runServer(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := newAPIClient(cfg)
	defer api.Close()

	server, registry := newServer(api)

	var err error
	switch strings.ToLower(cfg.Transport) {
	case "http":
		err = serveHTTP(ctx, cfg, server, registry)
	default:
		logger.Info("MCP stdio server starting", "tools", len(registry), "base_url", cfg.BaseURL)
		err = server.Run(ctx, &mcp.StdioTransport{})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server shutting down")
	return nil
}

func resourceList() string {
	names := make([]string, 0, len(pokeapi.Resources()))
	for _, r := range pokeapi.Resources() {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

// indentJSON re-renders raw upstream JSON with two-space indentation.
func indentJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("unexpected error: invalid JSON from upstream: %w", err)
	}
	return buf.Bytes(), nil
}
