package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/config"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/extension"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/session"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// loadExtension builds the snippet pipeline from the config file the
// user pointed at, or the default locations
func loadExtension(configPath string) (*extension.Extension, error) {
	prefs, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return extension.New(prefs), nil
}

// findSnippet returns the best match for name
func findSnippet(ext *extension.Extension, name string) (*types.SnippetDefinition, error) {
	defs, err := ext.Search(name)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no snippet matches %q", name)
	}
	return defs[0], nil
}

// collectAndComplete walks the variable prompts using valueFor and
// finishes the render, cancelling the session on input failure
func collectAndComplete(ext *extension.Extension, def *types.SnippetDefinition, valueFor func(*types.VariableSpec) (string, error)) (types.RenderResult, error) {
	prompt, err := ext.Select(def)
	if err != nil {
		return types.RenderResult{}, err
	}

	for prompt.State == session.StateCollectingVariable {
		input, err := valueFor(prompt.Variable)
		if err != nil {
			ext.Cancel()
			return types.RenderResult{}, err
		}
		prompt, err = ext.Submit(input)
		if err != nil {
			return types.RenderResult{}, err
		}
	}

	return ext.Complete()
}

// reportResult tells the user where the render went
func reportResult(cmd *cobra.Command, res types.RenderResult) {
	if res.IsFile() {
		fmt.Fprintf(cmd.OutOrStdout(), "Snippet written to %s\n", pathStyle().Render(res.FilePath))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Snippet copied to clipboard (%s)\n", res.MimeType)
}

func newSearchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "List snippets matching a fuzzy query",
		Long: `Search lists the snippets under the configured snippets directory whose
names match the query as a loose subsequence, best matches first. With
no query, every snippet is listed alphabetically.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  # List everything
  ulauncher-snippets search

  # Fuzzy-match names
  ulauncher-snippets search rct`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := loadExtension(*configPath)
			if err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			defs, err := ext.Search(query)
			if err != nil {
				return err
			}

			if len(defs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snippets found.")
				return nil
			}
			for _, def := range defs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					nameStyle().Render(def.Name), descStyle().Render(def.Description))
			}
			return nil
		},
	}
}

func newShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a snippet's metadata and template body",
		Args:  cobra.ExactArgs(1),
		Example: `  # Inspect the best match for "react"
  ulauncher-snippets show react`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := loadExtension(*configPath)
			if err != nil {
				return err
			}
			def, err := findSnippet(ext, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, nameStyle().Render(def.Name))
			if def.Description != "" {
				fmt.Fprintln(out, descStyle().Render(def.Description))
			}
			if def.Vars.Len() > 0 {
				fmt.Fprintf(out, "Variables: %s\n", strings.Join(def.Vars.IDs(), ", "))
			}
			fmt.Fprintln(out)

			if def.Markdown {
				fmt.Fprint(out, previewMarkdown(def.Body))
				return nil
			}
			fmt.Fprintln(out, def.Body)
			return nil
		},
	}
}

func newRenderCmd(configPath *string) *cobra.Command {
	var setFlags []string

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a snippet non-interactively",
		Long: `Render completes the best match for name without prompting. Variable
values come from --set flags; anything not set falls back to the
variable's declared default.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Render with defaults only
  ulauncher-snippets render greeting

  # Supply variable values
  ulauncher-snippets render greeting --set who=World`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := loadExtension(*configPath)
			if err != nil {
				return err
			}
			def, err := findSnippet(ext, args[0])
			if err != nil {
				return err
			}

			values := map[string]string{}
			for _, flag := range setFlags {
				id, value, ok := strings.Cut(flag, "=")
				if !ok {
					return errors.Newf(errors.ErrInvalidInput, "--set expects id=value, got %q", flag)
				}
				values[id] = value
			}

			res, err := collectAndComplete(ext, def, func(spec *types.VariableSpec) (string, error) {
				if value, ok := values[spec.ID]; ok {
					return value, nil
				}
				return session.DefaultSentinel, nil
			})
			if err != nil {
				return err
			}

			reportResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "Variable value as id=value (repeatable)")
	return cmd
}

func newFillCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fill <name>",
		Short: "Render a snippet, prompting for each variable",
		Long: `Fill walks the best match for name through its variables one by one,
prompting on the terminal. Submitting "-" picks the variable's declared
default.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Interactively fill and copy a snippet
  ulauncher-snippets fill greeting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := loadExtension(*configPath)
			if err != nil {
				return err
			}
			def, err := findSnippet(ext, args[0])
			if err != nil {
				return err
			}

			res, err := collectAndComplete(ext, def, func(spec *types.VariableSpec) (string, error) {
				label := spec.Label
				if label == "" {
					label = spec.ID
				}
				return pterm.DefaultInteractiveTextInput.
					WithDefaultValue(spec.Default).
					Show(label)
			})
			if err != nil {
				return err
			}

			reportResult(cmd, res)
			return nil
		},
	}
}
