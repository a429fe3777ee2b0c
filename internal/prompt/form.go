package prompt

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

// FormPrompter renders each question as a single-field huh form.
type FormPrompter struct {
	theme *huh.Theme
}

func NewFormPrompter() *FormPrompter {
	return &FormPrompter{theme: huh.ThemeCharm()}
}

func (p *FormPrompter) Input(ctx context.Context, message, defaultValue string) (string, error) {
	value := defaultValue

	input := huh.NewInput().
		Title(message).
		Placeholder(defaultValue).
		Value(&value)

	if err := p.run(ctx, input); err != nil {
		return "", err
	}

	if value == "" {
		return defaultValue, nil
	}
	return value, nil
}

func (p *FormPrompter) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	value := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := p.run(ctx, confirm); err != nil {
		return false, err
	}
	return value, nil
}

func (p *FormPrompter) run(ctx context.Context, field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}
