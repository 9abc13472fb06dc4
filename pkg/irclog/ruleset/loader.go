package ruleset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironchicken/Parse-IRCLog/internal/safefile"
)

// sanitizePathError removes the path from os.PathError to prevent information
// leakage. This ensures error messages don't expose file system paths to users.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

const (
	// MaxRuleFileSize is the maximum allowed size for a rule file (1MB).
	// This limit prevents denial-of-service via extremely large files.
	MaxRuleFileSize = 1 * 1024 * 1024 // 1 MB

	// MaxRuleLength is the maximum allowed length for a single pattern
	// override (512 bytes). This helps mitigate ReDoS via excessively
	// complex patterns.
	MaxRuleLength = 512

	// SupportedVersion is the currently supported rule file format version.
	SupportedVersion = 1
)

// RuleFile represents the structure of a YAML rule file.
// Rule files let users adapt the parser to a different log dialect without
// writing Go: sub-pattern overrides re-compose into the default top-level
// rules, while the message/action fields replace a composed rule wholesale.
//
// Example YAML file:
//
//	version: 1
//	rules:
//	  nick: '[-\w]+'
//	  action_leader: '\[ACTION\]'
type RuleFile struct {
	// Version is the rule file format version. Currently only version 1
	// is supported.
	Version int `yaml:"version"`

	// Rules maps sub-pattern names (nick, chan, timestamp, nick_container,
	// action_leader) to replacement pattern text.
	Rules map[string]string `yaml:"rules"`

	// Message, if set, replaces the composed message pattern entirely.
	// It must define the "nick" and "text" named capture groups.
	Message string `yaml:"message"`

	// Action, if set, replaces the composed action pattern entirely.
	// It must define the "nick" and "text" named capture groups.
	Action string `yaml:"action"`
}

// Load reads and parses a rule file from the given path.
// Returns an error if the file cannot be read, is too large, or fails
// validation. Non-regular files (FIFO, device, socket) are rejected.
func Load(path string) (*RuleFile, error) {
	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file: %w", sanitizePathError(err))
	}
	defer f.Close()

	if info.Size() == 0 {
		return nil, errors.New("rule file is empty")
	}
	if info.Size() > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", info.Size(), MaxRuleFileSize)
	}

	// Read with a limit to guard against the file growing between the
	// stat and the read.
	data, err := io.ReadAll(io.LimitReader(f, MaxRuleFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", sanitizePathError(err))
	}
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	return LoadBytes(data)
}

// LoadBytes parses a rule file from a byte slice.
// Returns an error if the data cannot be parsed or fails validation.
func LoadBytes(data []byte) (*RuleFile, error) {
	if len(data) == 0 {
		return nil, errors.New("rule file is empty")
	}
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rf.Validate(); err != nil {
		return nil, err
	}

	return &rf, nil
}

// Validate performs schema-level validation on the rule file.
// It checks the version, that at least one override is present, that all
// sub-pattern names are known, and that pattern lengths stay within limits.
//
// Note: this function does NOT compile regular expressions. Compilation and
// group validation happen in New() to avoid duplicating work.
func (rf *RuleFile) Validate() error {
	if rf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", rf.Version, SupportedVersion),
		}
	}

	if len(rf.Rules) == 0 && rf.Message == "" && rf.Action == "" {
		return &ValidationError{
			Field:   "rules",
			Message: "at least one override is required",
		}
	}

	for name, text := range rf.Rules {
		switch name {
		case SubNick, SubChan, SubTimestamp, SubNickContainer, SubActionLeader:
		default:
			return &ValidationError{
				Field:   name,
				Message: "unknown sub-pattern name",
			}
		}
		if text == "" {
			return &ValidationError{
				Field:   name,
				Message: "sub-pattern must not be empty",
			}
		}
		if len(text) > MaxRuleLength {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(text), MaxRuleLength),
			}
		}
	}

	if len(rf.Message) > MaxRuleLength {
		return &ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(rf.Message), MaxRuleLength),
		}
	}
	if len(rf.Action) > MaxRuleLength {
		return &ValidationError{
			Field:   "action",
			Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(rf.Action), MaxRuleLength),
		}
	}

	return nil
}

// Config converts the rule file into a Config suitable for New.
func (rf *RuleFile) Config() Config {
	cfg := Config{}
	if len(rf.Rules) > 0 {
		cfg.Subpatterns = make(map[string]string, len(rf.Rules))
		for name, text := range rf.Rules {
			cfg.Subpatterns[name] = text
		}
	}
	if msg := rf.Message; msg != "" {
		cfg.BuildMessage = func(map[string]string) string { return msg }
	}
	if action := rf.Action; action != "" {
		cfg.BuildAction = func(map[string]string) string { return action }
	}
	return cfg
}

// NewFromFile is a convenience function that loads a rule file and builds
// a RuleSet in one step.
//
// Example:
//
//	rules, err := ruleset.NewFromFile("irssi.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromFile(path string) (*RuleSet, error) {
	rf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return New(rf.Config())
}
