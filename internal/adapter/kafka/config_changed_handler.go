package kafka

import (
	"context"
	"log/slog"

	"github.com/parcelio/shipping-api/internal/usecase"
)

// ConfigChangedHandler rebuilds the rule set when a configuration change
// lands on the config-changed topic. Fresh rule instances carry fresh
// loaders, so any cached configuration is discarded.
type ConfigChangedHandler struct {
	factory usecase.RuleFactory
	calc    *usecase.CalculateShipping
	log     *slog.Logger
}

func NewConfigChangedHandler(factory usecase.RuleFactory, calc *usecase.CalculateShipping, log *slog.Logger) *ConfigChangedHandler {
	return &ConfigChangedHandler{factory: factory, calc: calc, log: log}
}

func (h *ConfigChangedHandler) Handle(ctx context.Context, msg usecase.ConfigChangedMsg) error {
	rules := h.factory()
	h.calc.ReplaceRules(rules)
	if h.log != nil {
		h.log.Info("rule set rebuilt after config change",
			"config_id", msg.ConfigID,
			"changed_at", msg.ChangedAt,
			"rules", len(rules))
	}
	return nil
}
