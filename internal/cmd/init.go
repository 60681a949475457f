package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/vsixinstaller/internal/config"
	"github.com/adamancini/vsixinstaller/internal/templates"
)

func (a *app) newInitCmd() *cobra.Command {
	var templateName string
	var outputPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file from a template",
		Long: `Create a vsixinstaller config file from a built-in template.

Available templates:
  registry   - Read installed versions from the registry
  portable   - Declare installations explicitly

Examples:
  vsixinstaller init                       # Choose a template interactively
  vsixinstaller init --template=portable
  vsixinstaller init --output ./vsixinstaller.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(templateName, outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "Template name")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output path for the config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	_ = cmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var completions []string
		for _, name := range templates.List() {
			completions = append(completions, fmt.Sprintf("%s\t%s", name, templates.GetDescription(name)))
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runInit writes a template to outputPath. Messages go to stderr.
func (a *app) runInit(templateName, outputPath string, force bool) error {
	reader := bufio.NewReader(a.stdin)

	if outputPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		outputPath = p
	}

	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", outputPath)
	}

	if templateName == "" {
		if a.isTerminal() {
			selected, err := selectTemplateInteractive(reader, a.stderr)
			if err != nil {
				return err
			}
			templateName = selected
		} else {
			templateName = templates.DefaultTemplate
		}
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	if err := validateTemplateContent(tmpl.Content); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	parentDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", parentDir, err)
	}

	if err := os.WriteFile(outputPath, tmpl.Content, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := a.progress()
	_, _ = fmt.Fprintf(out, "Created %s from the '%s' template\n", outputPath, tmpl.Name)
	_, _ = fmt.Fprintln(out, "Run 'vsixinstaller versions' to check which installations it finds.")

	return nil
}

// selectTemplateInteractive shows a numbered menu for template selection.
func selectTemplateInteractive(reader *bufio.Reader, out io.Writer) (string, error) {
	templateList := templates.List()

	_, _ = fmt.Fprintln(out, "Select a config template:")
	for i, name := range templateList {
		_, _ = fmt.Fprintf(out, "  %d. %-10s - %s\n", i+1, name, templates.GetDescription(name))
	}
	_, _ = fmt.Fprintf(out, "Select [1-%d]: ", len(templateList))

	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	answer = strings.TrimSpace(answer)

	num, err := strconv.Atoi(answer)
	if err != nil || num < 1 || num > len(templateList) {
		return "", fmt.Errorf("invalid selection: %s", answer)
	}

	return templateList[num-1], nil
}

// validateTemplateContent checks the content loads as a config. Load works
// on files, so the content goes through a temp file.
func validateTemplateContent(content []byte) error {
	tmpFile, err := os.CreateTemp("", "vsixinstaller-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	_, err = config.Load(tmpName)
	return err
}
