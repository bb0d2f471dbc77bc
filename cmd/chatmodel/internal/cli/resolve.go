package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/factory"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/metrics"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/resolver"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

type resolution struct {
	Provider types.ProviderType `yaml:"provider"`
	ClientID string             `yaml:"clientId"`
	Config   types.ModelConfig  `yaml:"config"`
}

func newResolveCommand(global *globalOptions) *cobra.Command {
	var (
		model           string
		provider        string
		defaultProvider string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the provider and model configuration for a request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := global.logger(cmd)
			if err != nil {
				return err
			}

			src, err := global.settingsSource()
			if err != nil {
				return err
			}

			registry, err := factory.NewDefaultRegistry(factory.CredentialsFromEnv())
			if err != nil {
				return err
			}

			promRegistry := prometheus.NewRegistry()
			collector, err := metrics.NewCollector(promRegistry)
			if err != nil {
				return err
			}
			defer logCounters(cmd.Context(), logger, promRegistry)

			opts := []resolver.Option{
				resolver.WithLogger(logger),
				resolver.WithMetrics(collector),
			}
			if defaultProvider != "" {
				opts = append(opts, resolver.WithDefaultProvider(types.ProviderType(defaultProvider)))
			}
			r := resolver.New(registry, src, opts...)

			chatModel, err := r.GetChatModel(types.RequestContext{
				ModelName: model,
				Provider:  types.ProviderType(provider),
			})
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(resolution{
				Provider: chatModel.Type(),
				ClientID: chatModel.ID(),
				Config:   chatModel.Config(),
			})
			if err != nil {
				return fmt.Errorf("failed to encode resolution: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model name")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "provider override")
	cmd.Flags().StringVar(&defaultProvider, "default-provider", "", "provider used when the settings persist none")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

// logCounters writes every gathered counter sample at debug level.
func logCounters(ctx context.Context, logger *slog.Logger, gatherer prometheus.Gatherer) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	families, err := gatherer.Gather()
	if err != nil {
		logger.Warn("failed to gather metrics", "error", err)
		return
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			attrs := []any{"metric", family.GetName(), "value", m.GetCounter().GetValue()}
			for _, label := range m.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			logger.Debug("counter", attrs...)
		}
	}
}
