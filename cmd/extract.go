package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumenotes/nugget-cli/internal/extract"
	"github.com/lumenotes/nugget-cli/internal/model"
)

var (
	extractFile        string
	extractPrompt      string
	extractProfile     string
	extractTypes       []string
	extractTemperature float64
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract nuggets from a file or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		content, err := readContent(extractFile)
		if err != nil {
			return err
		}
		if strings.TrimSpace(content) == "" {
			return eris.New("input is empty")
		}

		svc, err := newService(cfg)
		if err != nil {
			return err
		}

		req := extract.Request{Content: content}
		if err := applyPromptFlags(cmd, &req); err != nil {
			return err
		}
		if req.Types, err = parseTypes(extractTypes); err != nil {
			return err
		}

		result, err := svc.Extract(ctx, req)
		if err != nil {
			return eris.Wrap(err, "extract")
		}

		zap.L().Info("extraction done",
			zap.Int("total", result.TotalCount),
			zap.Int("validated", result.ValidatedCount),
			zap.String("provider", result.Provider),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// readContent reads the document from path, or stdin when path is "-" or
// empty.
func readContent(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", eris.Wrap(err, "read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

// applyPromptFlags resolves the extraction instruction: an explicit --prompt
// wins, then a named profile from the configured profile file, then the
// built-in default. The command is passed in rather than read from the
// package variable so flag state stays out of the initializer graph.
func applyPromptFlags(cmd *cobra.Command, req *extract.Request) error {
	if cmd.Flags().Changed("temperature") {
		t := extractTemperature
		req.Temperature = &t
	}

	if extractPrompt != "" {
		req.Prompt = extractPrompt
		return nil
	}

	if extractProfile != "" {
		if cfg.Extract.ProfilePath == "" {
			return eris.New("--profile requires extract.profile_path in config")
		}
		profiles, err := extract.LoadProfiles(cfg.Extract.ProfilePath)
		if err != nil {
			return err
		}
		p, ok := profiles[extractProfile]
		if !ok {
			return eris.Errorf("unknown profile %q", extractProfile)
		}
		req.Prompt = p.Instruction
		if req.Temperature == nil && p.Temperature != nil {
			req.Temperature = p.Temperature
		}
		return nil
	}

	req.Prompt = extract.DefaultPrompt
	return nil
}

func parseTypes(names []string) ([]model.NuggetType, error) {
	if len(names) == 0 {
		return nil, nil
	}
	types := make([]model.NuggetType, 0, len(names))
	for _, name := range names {
		t, ok := model.ParseNuggetType(strings.TrimSpace(name))
		if !ok {
			return nil, eris.Errorf("unknown nugget type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "input file (default stdin)")
	extractCmd.Flags().StringVar(&extractPrompt, "prompt", "", "extraction instruction (overrides --profile)")
	extractCmd.Flags().StringVar(&extractProfile, "profile", "", "named profile from the configured profile file")
	extractCmd.Flags().StringSliceVar(&extractTypes, "types", nil, "restrict to these nugget types (comma-separated)")
	extractCmd.Flags().Float64Var(&extractTemperature, "temperature", 0, "sampling temperature")
	rootCmd.AddCommand(extractCmd)
}
