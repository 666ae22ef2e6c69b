// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backend identifies the PDF engine used to read sources and write outputs.
type Backend string

const (
	BackendPDFCPU Backend = "pdfcpu"
	BackendQPDF   Backend = "qpdf"
)

// ValidationMode selects how strictly the pdfcpu backend validates sources.
type ValidationMode string

const (
	ValidationRelaxed ValidationMode = "relaxed"
	ValidationStrict  ValidationMode = "strict"
)

// Defaults applied when a configuration value is missing or out of range.
const (
	DefaultPromptPrefix = "> "
	DefaultMaxOutputs   = 100
	DefaultQPDFPath     = "qpdf"
	DefaultLogLevel     = "warn"
)

// HistoryConfig holds settings for the optional split history database.
type HistoryConfig struct {
	// Enabled turns on recording of every generated output.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default ~/.local/share/pdf-splitter/history.db).
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// EngineConfig holds settings for the PDF engine.
type EngineConfig struct {
	// Backend selects the engine: pdfcpu or qpdf.
	Backend Backend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Validation is the pdfcpu validation mode: relaxed or strict.
	Validation ValidationMode `json:"validation" yaml:"validation" mapstructure:"validation"`

	// QPDFPath is the qpdf binary used by the qpdf backend.
	QPDFPath string `json:"qpdf_path" yaml:"qpdf_path" mapstructure:"qpdf_path"`
}

// SplitterConfig groups the settings of one split session.
type SplitterConfig struct {
	EngineConfig `yaml:",inline" mapstructure:",squash"`

	// PromptPrefix is printed before every interactive prompt (default "> ").
	PromptPrefix string `json:"prompt_prefix" yaml:"prompt_prefix" mapstructure:"prompt_prefix"`

	// MaxOutputs bounds how many output files one session may plan (default 100).
	MaxOutputs int `json:"max_outputs" yaml:"max_outputs" mapstructure:"max_outputs"`

	// AllowHidden permits output names starting with a dot.
	AllowHidden bool `json:"allow_hidden" yaml:"allow_hidden" mapstructure:"allow_hidden"`

	// ConfirmOverwrite asks before planning an output over an existing file.
	ConfirmOverwrite bool `json:"confirm_overwrite" yaml:"confirm_overwrite" mapstructure:"confirm_overwrite"`

	// Dir presets the working directory and skips the directory prompt.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`

	// Progress shows a progress bar on stderr during generation when stderr is a terminal.
	Progress bool `json:"progress" yaml:"progress" mapstructure:"progress"`

	// LogLevel is the logrus level for diagnostics on stderr (default warn).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}

// WithDefaults returns a copy of c with zero or invalid values replaced by
// their defaults.
func (c SplitterConfig) WithDefaults() SplitterConfig {
	if c.PromptPrefix == "" {
		c.PromptPrefix = DefaultPromptPrefix
	}
	if c.MaxOutputs <= 0 {
		c.MaxOutputs = DefaultMaxOutputs
	}
	if c.Backend == "" {
		c.Backend = BackendPDFCPU
	}
	if c.Validation == "" {
		c.Validation = ValidationRelaxed
	}
	if c.QPDFPath == "" {
		c.QPDFPath = DefaultQPDFPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}
