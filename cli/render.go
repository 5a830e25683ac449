package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/config"
	"github.com/adimarco/cria/internal/devtools"
	"github.com/adimarco/cria/internal/fixture"
	"github.com/adimarco/cria/internal/logging"
	"github.com/adimarco/cria/internal/provider"
	"github.com/adimarco/cria/internal/token"
)

func renderCmd() *cobra.Command {
	var (
		configPath   string
		providerName string
		showTrace    bool
	)

	cmd := &cobra.Command{
		Use:   "render [fixture.yaml]",
		Short: "Render a prompt tree fixture through a configured provider",
		Long: `render loads a YAML prompt-tree fixture, runs the fit loop against a
configured budget and provider, and prints the resulting provider-native
request as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], configPath, providerName, showTrace)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to cria.config.yaml")
	cmd.Flags().StringVar(&providerName, "provider", "", "named provider from config to render with (overrides fixture/default)")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "print the fit-loop session trace instead of the rendered request")

	return cmd
}

func runRender(cmd *cobra.Command, fixturePath, configPath, providerName string, showTrace bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := initLogging(settings.Logger); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger := logging.GetLogger("cli.render")

	f, err := fixture.Load(fixturePath)
	if err != nil {
		return err
	}
	root, err := f.ToNode()
	if err != nil {
		return fmt.Errorf("build prompt tree: %w", err)
	}

	name := providerName
	if name == "" {
		name = settings.Providers.Default
	}
	mp, err := resolveProviderFromSettings(settings, name, f)
	if err != nil {
		return err
	}

	budget := f.Budget
	if budget == 0 {
		budget = settings.DefaultBudget
	}
	if budget == 0 {
		return fmt.Errorf("no budget: set budget in the fixture or default_budget in config")
	}

	renderID := uuid.NewString()
	rec := devtools.NewRecorder(renderID, "cli", "cria render", fixturePath)
	hooks := logging.NewFitHooks(logger, renderID, rec.Hooks())
	opts := cria.RenderOptions{Provider: mp, Budget: &budget, Hooks: hooks}

	result, err := cria.Render(ctx, root, opts)
	sess := rec.Session()
	logger.Info("render completed",
		logging.RenderID(renderID),
		zap.String("status", string(sess.Status)),
		logging.Iteration(sess.Iterations),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if showTrace {
		return printJSON(cmd, sess)
	}
	return printJSON(cmd, result)
}

// initLogging applies the configured logger settings process-wide; a
// "file" logger appends to the configured path.
func initLogging(cfg config.LoggerSettings) error {
	lc := logging.Config{Type: cfg.Type, Level: cfg.Level}
	if cfg.Type == "file" {
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		lc.Writer = zapcore.AddSync(f)
	}
	return logging.Initialize(lc)
}

func resolveProviderFromSettings(settings *config.Settings, name string, f *fixture.File) (cria.ModelProvider, error) {
	protocol := f.Provider
	model := f.Model

	if name != "" {
		cfg, ok := settings.Providers.Configs[name]
		if !ok {
			return nil, fmt.Errorf("no provider named %q in config", name)
		}
		protocol = cfg.Protocol
		if model == "" {
			model = cfg.Model
		}
	}
	if protocol == "" {
		protocol = "anthropic"
	}

	counter := token.NewMemoizingCounter(token.NewHeuristicCounter())
	switch protocol {
	case "anthropic":
		return provider.NewAnthropicProvider(model, counter), nil
	case "openai-chat":
		return provider.NewOpenAIChatProvider(model, counter), nil
	case "openai-responses":
		return provider.NewOpenAIResponsesProvider(model, counter), nil
	default:
		return nil, fmt.Errorf("unknown provider protocol %q", protocol)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if !noColor {
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
