// Package snake fills in cobra flags by prompting for them.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// PromptFlags asks for each named flag that was not set on the command line
// and sets it from the answer. Flags the command does not have are skipped.
func PromptFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		answer, err := promptFlag(cmd, f)
		if err != nil {
			return err
		}
		if answer == "" {
			continue
		}
		if err := cmd.Flags().Set(name, answer); err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
	}
	return nil
}

// PromptValue asks for a value that must not be empty, such as a missing
// positional argument.
func PromptValue(cmd *cobra.Command, label string) (string, error) {
	result, err := newPrompt(cmd, label, "", Required(nil)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", label, err)
	}
	return strings.TrimSpace(result), nil
}

func promptFlag(cmd *cobra.Command, f *pflag.Flag) (string, error) {
	result, err := newPrompt(cmd, asFlags(f), defaultFor(f), validatorFor(f)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt --%s: %w", f.Name, err)
	}
	return strings.TrimSpace(result), nil
}

func newPrompt(cmd *cobra.Command, label, def string, validate promptui.ValidateFunc) *promptui.Prompt {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}
	return &promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}
}

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s (%s)", f.Name, f.Shorthand, f.Usage)
	}
	return fmt.Sprintf("--%s (%s)", f.Name, f.Usage)
}

func defaultFor(f *pflag.Flag) string {
	switch f.DefValue {
	case "0", "false":
		return ""
	}
	return f.DefValue
}

func validatorFor(f *pflag.Flag) promptui.ValidateFunc {
	switch f.Value.Type() {
	case "int":
		return func(input string) error {
			if strings.TrimSpace(input) == "" {
				return nil
			}
			_, err := strconv.Atoi(strings.TrimSpace(input))
			return err
		}
	case "bool":
		return func(input string) error {
			if strings.TrimSpace(input) == "" {
				return nil
			}
			_, err := ParseBool(strings.TrimSpace(input))
			return err
		}
	default:
		return func(string) error { return nil }
	}
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "NO", "No", "no":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

var errEmpty = errors.New("empty")

// Required wraps a validator so an empty answer is rejected.
func Required(next promptui.ValidateFunc) promptui.ValidateFunc {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errEmpty
		}
		if next == nil {
			return nil
		}
		return next(input)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
