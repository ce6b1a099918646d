package manifest

// Entity kind constants for the kind discriminator.
const (
	KindAgent   = "agent"
	KindSkill   = "skill"
	KindCommand = "command"
)

// ValidKinds contains all recognized entity kinds.
var ValidKinds = []string{KindAgent, KindSkill, KindCommand}

// Bond type constants for SkillHeader.BondType.
const (
	BondPrimary   = "PRIMARY_BOND"
	BondSecondary = "SECONDARY_BOND"
)

// Parameter rule type constants for ParameterRule.Type.
const (
	ParamString  = "string"
	ParamNumber  = "number"
	ParamBoolean = "boolean"
	ParamObject  = "object"
	ParamArray   = "array"
)

// Backoff strategy constants for RetryConfig.Backoff.
const (
	BackoffFixed       = "fixed"
	BackoffExponential = "exponential"
)

// Entity is one parsed manifest: a typed header plus opaque prose body.
// Entities live only for the duration of a single validation run.
type Entity struct {
	Kind       string // agent, skill, or command
	Name       string // unique within its kind
	SourcePath string // bundle-relative path of the source file
	// Header is the kind-specific payload: *AgentHeader, *SkillHeader, or
	// *CommandHeader. Nil when the header could not be decoded into its
	// typed form.
	Header interface{}
	// Body is the prose content after the header block. It is carried as
	// opaque text and never inspected.
	Body string
	// SchemaBroken marks entities with at least one schema finding. They
	// still enter the bond graph so other entities' references to them
	// resolve, but the report distinguishes them from sound entities.
	SchemaBroken bool
}

// BaseHeader contains fields shared by all header kinds.
type BaseHeader struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
}

// AgentHeader declares an agent: its model, capability tokens, and the
// skills it uses.
type AgentHeader struct {
	BaseHeader    `yaml:",inline"`
	Model         string                 `yaml:"model,omitempty" json:"model,omitempty"`
	Tools         []string               `yaml:"tools,omitempty" json:"tools,omitempty"`
	Skills        []string               `yaml:"skills,omitempty" json:"skills,omitempty"`
	InputSchema   map[string]interface{} `yaml:"input_schema,omitempty" json:"input_schema,omitempty"`
	OutputSchema  map[string]interface{} `yaml:"output_schema,omitempty" json:"output_schema,omitempty"`
	RetryConfig   *RetryConfig           `yaml:"retry_config,omitempty" json:"retry_config,omitempty"`
	ErrorHandling *ErrorHandling         `yaml:"error_handling,omitempty" json:"error_handling,omitempty"`
}

// SkillHeader declares a skill and its primary bond to an agent.
type SkillHeader struct {
	BaseHeader          `yaml:",inline"`
	BondedAgent         string                   `yaml:"bonded_agent,omitempty" json:"bonded_agent,omitempty"`
	BondType            string                   `yaml:"bond_type,omitempty" json:"bond_type,omitempty"`
	AtomicOperations    []string                 `yaml:"atomic_operations,omitempty" json:"atomic_operations,omitempty"`
	ParameterValidation map[string]ParameterRule `yaml:"parameter_validation,omitempty" json:"parameter_validation,omitempty"`
	RetryLogic          *RetryConfig             `yaml:"retry_logic,omitempty" json:"retry_logic,omitempty"`
	ExitCodes           map[string]int           `yaml:"exit_codes,omitempty" json:"exit_codes,omitempty"`
}

// CommandHeader declares a slash-command style entry point.
type CommandHeader struct {
	BaseHeader          `yaml:",inline"`
	AllowedTools        []string                 `yaml:"allowed_tools,omitempty" json:"allowed_tools,omitempty"`
	ParameterValidation map[string]ParameterRule `yaml:"parameter_validation,omitempty" json:"parameter_validation,omitempty"`
	ExitCodes           map[string]int           `yaml:"exit_codes,omitempty" json:"exit_codes,omitempty"`
}

// ParameterRule constrains one declared parameter. Pointer fields distinguish
// "absent" from zero values so cross-field checks can tell them apart.
type ParameterRule struct {
	Type          string   `yaml:"type" json:"type"`
	Required      bool     `yaml:"required,omitempty" json:"required,omitempty"`
	MinLength     *int     `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	Maximum       *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	AllowedValues []string `yaml:"allowed_values,omitempty" json:"allowed_values,omitempty"`
}

// RetryConfig declares retry behavior for an agent or skill.
type RetryConfig struct {
	MaxAttempts    int    `yaml:"max_attempts" json:"max_attempts"`
	Backoff        string `yaml:"backoff" json:"backoff"`
	InitialDelayMs int    `yaml:"initial_delay_ms,omitempty" json:"initial_delay_ms,omitempty"`
}

// ErrorHandling declares the error kinds an agent handles and its fallback.
type ErrorHandling struct {
	Errors   []string `yaml:"errors,omitempty" json:"errors,omitempty"`
	Fallback string   `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

// Base returns the shared header fields for any typed header, or nil if the
// value is not one of the known header types.
func Base(header interface{}) *BaseHeader {
	switch h := header.(type) {
	case *AgentHeader:
		return &h.BaseHeader
	case *SkillHeader:
		return &h.BaseHeader
	case *CommandHeader:
		return &h.BaseHeader
	default:
		return nil
	}
}
