package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cinchlabs/cmseval/internal/dataset"
	"github.com/cinchlabs/cmseval/internal/projectconfig"
	"github.com/cinchlabs/cmseval/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a project config with a guided wizard",
		Long: `Run a guided wizard that collects provider and evaluation settings and
writes a starter ` + projectconfig.ConfigFileName + `.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, force bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, projectconfig.ConfigFileName)
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", configPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", configPath, err)
		}
	}

	ont, err := dataset.LoadOntology()
	if err != nil {
		return err
	}

	spec, err := wizard.RunInitWizard(cmd.InOrStdin(), cmd.OutOrStdout(), ont.UseCaseKeys())
	if err != nil {
		return err
	}

	content, err := wizard.GenerateConfig(spec)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized project:\n  %s\n", configPath) //nolint:errcheck
	return nil
}
