package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/walkerscm/codemerge/internal/config"
)

const defaultConfigFile = "codemerge.yaml"

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a codemerge.yaml with the default settings",
		Long:  `Interactively choose the root directory and output file, then write a codemerge.yaml containing them and the default exclude and include lists.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd)
		},
	}
	cmd.Flags().String("path", defaultConfigFile, "where to write the config file")
	cmd.Flags().BoolP("yes", "y", false, "skip prompts and write defaults")
	cmd.Flags().Bool("force", false, "overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("path")
	autoConfirm, _ := cmd.Flags().GetBool("yes")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := config.Default()
	if !autoConfirm {
		rootPrompt := promptui.Prompt{Label: "Root directory", Default: cfg.Root}
		root, err := rootPrompt.Run()
		if err != nil {
			return fmt.Errorf("root prompt: %w", err)
		}
		cfg.Root = root

		outPrompt := promptui.Prompt{Label: "Output file", Default: cfg.OutputFile}
		out, err := outPrompt.Run()
		if err != nil {
			return fmt.Errorf("output prompt: %w", err)
		}
		cfg.OutputFile = out

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Write %s", path),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Init cancelled.")
			return nil
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := writeConfigFile(path, &cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func writeConfigFile(path string, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := encodeConfig(f, cfg); err != nil {
		return err
	}
	return f.Close()
}

func encodeConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
