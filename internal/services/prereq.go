package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
)

// ToolStatus is the outcome of probing one required tool.
type ToolStatus struct {
	Name       string `json:"name" yaml:"name"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Found      bool   `json:"found" yaml:"found"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Problem    string `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// OK reports whether the tool is usable.
func (t ToolStatus) OK() bool {
	return t.Found && t.Problem == ""
}

// CheckPrerequisites verifies that every configured tool resolves on PATH,
// stopping at the first missing one, then applies the node version
// constraint.
func (s *BootstrapService) CheckPrerequisites(ctx context.Context) error {
	msgs := phaseMessages{
		start:   "Checking prerequisites...",
		success: "Prerequisites check passed",
		fail:    "Prerequisites check failed",
	}

	return s.runPhase(ctx, PhasePrerequisites, errors.ErrCodeToolMissing, msgs, func() error {
		for _, tool := range s.cfg.Prerequisites.Tools {
			if _, err := s.runner.LookPath(tool); err != nil {
				s.reporter.Warn(fmt.Sprintf("%s is not installed. Please install it first.", tool))
				return errors.PrerequisiteError(tool, "is not installed. Please install it first.").
					WithSuggestions(errors.MissingToolSuggestions(tool)...)
			}
		}

		status := s.checkNodeVersion(ctx)
		if status == nil || status.Problem == "" {
			return nil
		}
		return errors.NewValidationError(errors.ErrCodeToolVersion, status.Problem).
			WithContext("version", status.Version).
			WithContext("constraint", status.Constraint).
			WithSuggestions("Install a Node.js release matching " + status.Constraint + " from https://nodejs.org")
	})
}

// Diagnose probes every configured tool without stopping at failures. It
// backs the doctor command.
func (s *BootstrapService) Diagnose(ctx context.Context) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(s.cfg.Prerequisites.Tools))
	for _, tool := range s.cfg.Prerequisites.Tools {
		st := ToolStatus{Name: tool}
		path, err := s.runner.LookPath(tool)
		if err != nil {
			st.Problem = "not installed"
		} else {
			st.Found = true
			st.Path = path
		}

		if tool == "node" && st.Found {
			if node := s.checkNodeVersion(ctx); node != nil {
				st.Version = node.Version
				st.Constraint = node.Constraint
				st.Problem = node.Problem
			}
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// checkNodeVersion returns nil when no constraint applies.
func (s *BootstrapService) checkNodeVersion(ctx context.Context) *ToolStatus {
	constraint := strings.TrimSpace(s.cfg.Prerequisites.NodeVersion)
	if constraint == "" || !s.requires("node") {
		return nil
	}

	st := &ToolStatus{Name: "node", Found: true, Constraint: constraint}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		st.Problem = fmt.Sprintf("invalid node version constraint %q: %v", constraint, err)
		return st
	}

	res, err := s.runner.Run(ctx, runner.Command{Name: "node", Args: []string{"--version"}})
	if err != nil {
		st.Problem = fmt.Sprintf("could not determine node version: %v", err)
		return st
	}

	st.Version = strings.TrimSpace(res.Stdout)
	v, err := semver.NewVersion(st.Version)
	if err != nil {
		st.Problem = fmt.Sprintf("unrecognized node version %q", st.Version)
		return st
	}

	if !c.Check(v) {
		st.Problem = fmt.Sprintf("node %s does not satisfy %s", v.String(), constraint)
	}
	return st
}

func (s *BootstrapService) requires(tool string) bool {
	for _, t := range s.cfg.Prerequisites.Tools {
		if t == tool {
			return true
		}
	}
	return false
}
