package config

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FuzzLoadConfig tests settings loading with various malformed inputs
func FuzzLoadConfig(f *testing.F) {
	f.Add(`template:
  repository: https://github.com/stevengonsalvez/apppop.git
  strip_paths:
    - .git
    - .claudesync`)
	f.Add(`git:
  backend: svn`)
	f.Add(`template:
  strip_paths:
    - ../../etc`)
	f.Add(`prerequisites:
  node_version: ">= banana"`)
	f.Add(`malformed: yaml: content`)
	f.Add(``)

	f.Fuzz(func(t *testing.T, content string) {
		if len(content) > 50000 {
			t.Skip("content too large")
		}

		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(content)); err != nil {
			return
		}

		cfg, err := LoadFrom(v)
		if err != nil {
			return
		}

		// Whatever loads must also pass validation on its own.
		if err := Validate(cfg); err != nil {
			t.Errorf("loaded settings fail validation: %v", err)
		}
		for _, p := range cfg.Template.StripPaths {
			if strings.HasPrefix(p, "/") || p == ".." || strings.HasPrefix(p, "../") {
				t.Errorf("escaping strip path accepted: %q", p)
			}
		}
	})
}

// FuzzConfigValidation tests validation against arbitrary field values
func FuzzConfigValidation(f *testing.F) {
	f.Add("https://github.com/a/b.git", "apppop", ".git", "go-git", ">= 18.0.0")
	f.Add("", "", "", "", "")
	f.Add("file:///etc/passwd", "app pop", "/abs", "cli", "~1")
	f.Add("git@github.com:a/b.git", "x\"y", "a/../../b", "go-git", "")

	f.Fuzz(func(t *testing.T, repo, token, strip, backend, node string) {
		cfg := Default()
		cfg.Template.Repository = repo
		cfg.Template.ProductToken = token
		cfg.Template.StripPaths = []string{strip}
		cfg.Git.Backend = backend
		cfg.Prerequisites.NodeVersion = node

		if err := Validate(cfg); err == nil {
			if token == "" || strings.ContainsAny(token, " \t\n\"'") {
				t.Errorf("invalid token accepted: %q", token)
			}
			if backend != GitBackendGoGit && backend != GitBackendCLI {
				t.Errorf("unknown backend accepted: %q", backend)
			}
		}
	})
}

// FuzzYAMLRoundTrip checks that valid settings survive a YAML dump.
func FuzzYAMLRoundTrip(f *testing.F) {
	f.Add("my-apppop-app", "apppop", "AppPop")
	f.Add("", "tok", "Tok")

	f.Fuzz(func(t *testing.T, name, product, display string) {
		if !utf8.ValidString(name + product + display) {
			return
		}
		cfg := Default()
		cfg.Defaults.ProjectName = name
		cfg.Template.ProductToken = product
		cfg.Template.DisplayToken = display
		if Validate(cfg) != nil {
			return
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Config
		if err := yaml.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back.Template.ProductToken != product || back.Template.DisplayToken != display {
			t.Errorf("tokens changed: %q %q", back.Template.ProductToken, back.Template.DisplayToken)
		}
	})
}
