// Package config provides the settings of the apppop bootstrap tool using
// Viper for layered loading from files, environment variables, and
// command-line flags.
//
// Settings describe how the tool bootstraps a project (which template to
// clone, which tokens to replace, which tools to require). They are not the
// answers collected interactively for a single project.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. APPPOP_TEMPLATE_REPOSITORY.
const EnvPrefix = "APPPOP"

// Git backends.
const (
	GitBackendGoGit = "go-git"
	GitBackendCLI   = "cli"
)

type Config struct {
	Template      TemplateConfig      `mapstructure:"template" yaml:"template" json:"template"`
	Git           GitConfig           `mapstructure:"git" yaml:"git" json:"git"`
	Prerequisites PrerequisitesConfig `mapstructure:"prerequisites" yaml:"prerequisites" json:"prerequisites"`
	Defaults      DefaultsConfig      `mapstructure:"defaults" yaml:"defaults" json:"defaults"`
	LogLevel      string              `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Plain         bool                `mapstructure:"plain" yaml:"plain" json:"plain"`
}

type TemplateConfig struct {
	Repository   string   `mapstructure:"repository" yaml:"repository" json:"repository"`
	ProductToken string   `mapstructure:"product_token" yaml:"product_token" json:"product_token"`
	DisplayToken string   `mapstructure:"display_token" yaml:"display_token" json:"display_token"`
	StripPaths   []string `mapstructure:"strip_paths" yaml:"strip_paths" json:"strip_paths"`
}

type GitConfig struct {
	Backend       string `mapstructure:"backend" yaml:"backend" json:"backend"`
	CommitMessage string `mapstructure:"commit_message" yaml:"commit_message" json:"commit_message"`
	AuthorName    string `mapstructure:"author_name" yaml:"author_name" json:"author_name"`
	AuthorEmail   string `mapstructure:"author_email" yaml:"author_email" json:"author_email"`
}

type PrerequisitesConfig struct {
	Tools       []string `mapstructure:"tools" yaml:"tools" json:"tools"`
	NodeVersion string   `mapstructure:"node_version" yaml:"node_version" json:"node_version"`
}

type DefaultsConfig struct {
	ProjectName string `mapstructure:"project_name" yaml:"project_name" json:"project_name"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Template: TemplateConfig{
			Repository:   "https://github.com/stevengonsalvez/apppop.git",
			ProductToken: "apppop",
			DisplayToken: "AppPop",
			StripPaths:   []string{".git", ".claudesync"},
		},
		Git: GitConfig{
			Backend:       GitBackendGoGit,
			CommitMessage: "Initial commit from AppPop template",
			AuthorName:    "AppPop Bootstrap",
			AuthorEmail:   "bootstrap@apppop.dev",
		},
		Prerequisites: PrerequisitesConfig{
			Tools:       []string{"node", "npm", "git"},
			NodeVersion: ">= 18.0.0",
		},
		Defaults: DefaultsConfig{
			ProjectName: "my-apppop-app",
		},
		LogLevel: "warn",
	}
}

// SetDefaults registers the built-in settings on v so that environment
// variables are picked up for every key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("template.repository", d.Template.Repository)
	v.SetDefault("template.product_token", d.Template.ProductToken)
	v.SetDefault("template.display_token", d.Template.DisplayToken)
	v.SetDefault("template.strip_paths", d.Template.StripPaths)
	v.SetDefault("git.backend", d.Git.Backend)
	v.SetDefault("git.commit_message", d.Git.CommitMessage)
	v.SetDefault("git.author_name", d.Git.AuthorName)
	v.SetDefault("git.author_email", d.Git.AuthorEmail)
	v.SetDefault("prerequisites.tools", d.Prerequisites.Tools)
	v.SetDefault("prerequisites.node_version", d.Prerequisites.NodeVersion)
	v.SetDefault("defaults.project_name", d.Defaults.ProjectName)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("plain", d.Plain)
}

// ConfigureEnv enables APPPOP_ prefixed environment overrides on v.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the settings from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the settings held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Slices set through environment variables arrive as a single
	// space separated string (workaround for viper slice handling).
	if v.IsSet("prerequisites.tools") {
		cfg.Prerequisites.Tools = v.GetStringSlice("prerequisites.tools")
	}
	if v.IsSet("template.strip_paths") {
		cfg.Template.StripPaths = v.GetStringSlice("template.strip_paths")
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills empty values that an explicit empty setting must not
// disable. An empty node_version is meaningful and is left alone.
func applyDefaults(cfg *Config) {
	d := Default()

	if cfg.Template.Repository == "" {
		cfg.Template.Repository = d.Template.Repository
	}
	if cfg.Template.ProductToken == "" {
		cfg.Template.ProductToken = d.Template.ProductToken
	}
	if cfg.Template.DisplayToken == "" {
		cfg.Template.DisplayToken = d.Template.DisplayToken
	}
	if cfg.Git.Backend == "" {
		cfg.Git.Backend = d.Git.Backend
	}
	if cfg.Git.CommitMessage == "" {
		cfg.Git.CommitMessage = d.Git.CommitMessage
	}
	if cfg.Git.AuthorName == "" {
		cfg.Git.AuthorName = d.Git.AuthorName
	}
	if cfg.Git.AuthorEmail == "" {
		cfg.Git.AuthorEmail = d.Git.AuthorEmail
	}
	if len(cfg.Prerequisites.Tools) == 0 {
		cfg.Prerequisites.Tools = d.Prerequisites.Tools
	}
	if cfg.Defaults.ProjectName == "" {
		cfg.Defaults.ProjectName = d.Defaults.ProjectName
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = d.LogLevel
	}
}
