package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"draftline/internal/config"
	"draftline/internal/fileutil"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or scaffold draftline.toml",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented draftline.toml with every section",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveInitTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				if err := fileutil.WriteExclusive(target, nil, 0o644); err != nil {
					if errors.Is(err, fs.ErrExist) {
						return fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
					}
					return fmt.Errorf("reserve %s: %w", target, err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				if !overwrite {
					_ = os.Remove(target)
				}
				return fmt.Errorf("write sample config: %w", err)
			}
			printInitChecklist(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Where to write draftline.toml (default ~/.config/draftline/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func resolveInitTarget(flagValue string) (string, error) {
	flagValue = strings.TrimSpace(flagValue)
	if flagValue == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flagValue)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", flagValue, err)
	}
	return path, nil
}

func printInitChecklist(out io.Writer, target string) {
	fmt.Fprintf(out, "Created %s\n\n", target)
	fmt.Fprintln(out, "Before the first run:")
	fmt.Fprintln(out, "  [scrape] accounts       handles to watch, without the @")
	fmt.Fprintln(out, "  [scrape] providers      apify needs APIFY_API_KEY; nitter needs nitter_instances")
	fmt.Fprintln(out, "  [llm] api_key           or export OPENROUTER_API_KEY")
	fmt.Fprintln(out, "  [voice] username        persona account, then run `draftline analyze`")
	fmt.Fprintln(out, "  [images] enabled        optional; needs OPENAI_API_KEY")
	fmt.Fprintln(out, "Then run `draftline check`.")
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load draftline.toml and summarize what a run would do",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(*ctx.configFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Loaded %s\n", path)
			} else {
				fmt.Fprintf(out, "No file at %s; showing built-in defaults\n", path)
			}
			renderRows(out, []string{"Section", "Effective settings"}, configSummaryRows(cfg), nil)
			fmt.Fprintln(out, "draftline.toml is valid")
			return nil
		},
	}
}

// configSummaryRows describes each section in terms of pipeline behaviour.
func configSummaryRows(cfg *config.Config) [][]string {
	return [][]string{
		{"scrape", fmt.Sprintf("%d account(s), last %dh, providers %s",
			len(cfg.Scrape.Accounts), cfg.Scrape.HoursBack, providerOrder(cfg.Scrape.Providers))},
		{"generation", fmt.Sprintf("up to %d posts, similarity below %.2f, %.1fs between calls",
			cfg.Generation.MaxPosts, cfg.Generation.SimilarityThreshold, cfg.Generation.DelaySeconds)},
		{"llm", fmt.Sprintf("model %s, key %s", cfg.LLM.Model, setOrMissing(cfg.LLM.APIKey))},
		{"store", fmt.Sprintf("keeps newest %d drafts in %s", cfg.Store.MaxDrafts, cfg.DraftStorePath())},
		{"voice", fmt.Sprintf("persona %s, profile %s", orNone(cfg.Voice.Username), cfg.Paths.VoiceProfile)},
		{"images", onOff(cfg.Images.Enabled)},
		{"notifications", orNone(cfg.Notifications.NtfyTopic)},
		{"metrics", orNone(cfg.Metrics.TextfilePath)},
	}
}

func providerOrder(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " > ")
}

func setOrMissing(value string) string {
	if strings.TrimSpace(value) == "" {
		return "missing"
	}
	return "set"
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "off"
	}
	return value
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
