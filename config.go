package a32ir

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/a32ir/a32ir/internal/a32/translate"
	"github.com/a32ir/a32ir/logging"
)

// TranslatorConfig controls Translator behavior, with the default
// implementation as NewTranslatorConfig.
//
// The zero value is not usable. Each With* method returns a new
// TranslatorConfig, so configurations can be shared safely:
//
//	base := a32ir.NewTranslatorConfig().WithMaxInstructionsPerBlock(8)
//	strict := base
//	lenient := base.WithDefineUnpredictableBehaviour(true)
type TranslatorConfig interface {
	// WithDefineUnpredictableBehaviour makes UNPREDICTABLE encodings behave in
	// a fixed way instead of raising an unpredictable_instruction exception.
	// Defaults to false.
	WithDefineUnpredictableBehaviour(bool) TranslatorConfig

	// WithMaxInstructionsPerBlock bounds how many guest instructions a block
	// holds before it links to the next one. Defaults to 32. NewTranslator
	// fails with ErrInvalidConfig when this is not positive.
	WithMaxInstructionsPerBlock(int) TranslatorConfig

	// WithLogger sets the logger told about rejected guest instructions.
	// Defaults to a no-op logger.
	WithLogger(logging.Logger) TranslatorConfig

	// WithMetrics registers translation statistics with reg. Translators
	// configured with the same registerer share their collectors.
	WithMetrics(reg prometheus.Registerer) TranslatorConfig
}

type translatorConfig struct {
	defineUnpredictableBehaviour bool
	maxInstructionsPerBlock      int
	logger                       logging.Logger
	registerer                   prometheus.Registerer
}

// NewTranslatorConfig returns a TranslatorConfig with the defaults.
func NewTranslatorConfig() TranslatorConfig {
	return &translatorConfig{maxInstructionsPerBlock: translate.DefaultMaxInstructionsPerBlock}
}

// clone makes a deep copy of this translator config.
func (c *translatorConfig) clone() *translatorConfig {
	ret := *c
	return &ret
}

// WithDefineUnpredictableBehaviour implements TranslatorConfig.WithDefineUnpredictableBehaviour
func (c *translatorConfig) WithDefineUnpredictableBehaviour(enabled bool) TranslatorConfig {
	ret := c.clone()
	ret.defineUnpredictableBehaviour = enabled
	return ret
}

// WithMaxInstructionsPerBlock implements TranslatorConfig.WithMaxInstructionsPerBlock
func (c *translatorConfig) WithMaxInstructionsPerBlock(n int) TranslatorConfig {
	ret := c.clone()
	ret.maxInstructionsPerBlock = n
	return ret
}

// WithLogger implements TranslatorConfig.WithLogger
func (c *translatorConfig) WithLogger(logger logging.Logger) TranslatorConfig {
	ret := c.clone()
	ret.logger = logger
	return ret
}

// WithMetrics implements TranslatorConfig.WithMetrics
func (c *translatorConfig) WithMetrics(reg prometheus.Registerer) TranslatorConfig {
	ret := c.clone()
	ret.registerer = reg
	return ret
}
