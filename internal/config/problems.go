package config

import (
	"fmt"
	"os"
)

// ConfigurationError names a missing or invalid setting. The dependent
// feature is disabled; the process keeps running.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Problems reports every setting that disables a feature, in a stable order.
func (c *Config) Problems() []*ConfigurationError {
	var problems []*ConfigurationError
	add := func(field, reason string) {
		problems = append(problems, &ConfigurationError{Field: field, Reason: reason})
	}

	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		add("llm.provider", fmt.Sprintf("unsupported provider %q", c.LLM.Provider))
	}
	if c.LLM.APIKey == "" {
		add("llm.api_key", "generation credential is missing; submissions are disabled")
	}
	if c.LLM.Model == "" {
		add("llm.model", "model name is empty")
	}
	if c.LLM.Provider == ProviderOpenAI && c.LLM.BaseURL == "" {
		add("llm.base_url", "base url is required for the openai provider")
	}

	switch c.Store.Backend {
	case StoreMemory, StoreMySQL:
	case StoreSheets:
		if c.Sheets.SpreadsheetID == "" {
			add("sheets.spreadsheet_id", "spreadsheet id is missing; message store is disabled")
		}
		if _, err := os.Stat(c.Sheets.CredentialsFile); err != nil {
			add("sheets.credentials_file", "storage credential file is not readable; message store is disabled")
		}
	default:
		add("store.backend", fmt.Sprintf("unsupported backend %q", c.Store.Backend))
	}

	if len(c.Teachers) == 0 {
		add("teachers", "directory is empty; no recipient can be selected")
	}
	seen := make(map[string]bool, len(c.Teachers))
	seenNames := make(map[string]bool, len(c.Teachers))
	loginable := false
	for i, t := range c.Teachers {
		if t.ID == "" || t.DisplayName == "" {
			add(fmt.Sprintf("teachers[%d]", i), "id and display_name are required")
			continue
		}
		if seen[t.ID] {
			add(fmt.Sprintf("teachers[%d].id", i), fmt.Sprintf("duplicate id %q; row is skipped", t.ID))
			continue
		}
		if seenNames[t.DisplayName] {
			add(fmt.Sprintf("teachers[%d].display_name", i), fmt.Sprintf("duplicate display name %q; row is skipped", t.DisplayName))
			continue
		}
		seen[t.ID] = true
		seenNames[t.DisplayName] = true
		if t.PasswordHash != "" || t.Password != "" {
			loginable = true
		}
	}
	if len(c.Teachers) > 0 && !loginable && c.Auth.TeacherSharedPassword == "" {
		add("auth.teacher_shared_password", "no teacher credential configured; review is disabled")
	}
	if c.Submission.RequireStudentLogin && c.Auth.StudentPassword == "" {
		add("auth.student_password", "student login is required but no student password is set")
	}
	return problems
}
