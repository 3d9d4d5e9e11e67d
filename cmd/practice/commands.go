package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-practice/internal/app"
	"github.com/heartmarshall/myenglish-practice/internal/config"
	"github.com/heartmarshall/myenglish-practice/internal/domain"
	"github.com/heartmarshall/myenglish-practice/internal/exercise"
	"github.com/heartmarshall/myenglish-practice/internal/parser"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "practice",
		Short:        "Parse dialogue and passage output and build practice decks",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "YAML config file (default: CONFIG_PATH or ./config.yaml)")

	root.AddCommand(newParseDialogueCmd(), newParsePassageCmd(), newDeckCmd())
	return root
}

func newParseDialogueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-dialogue [file]",
		Short: "Extract dialogue turns from model output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			turns, err := parser.New(app.ParserConfig(cfg.Parser)).ParseDialogue(raw)
			if err != nil {
				return fmt.Errorf("parse dialogue: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), turns)
		},
	}
}

func newParsePassageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-passage [file]",
		Short: "Extract a reading passage with its questions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			p := parser.New(app.ParserConfig(cfg.Parser))
			if !strict {
				return writeOutput(cmd.OutOrStdout(), p.ParsePassage(raw))
			}
			passage, err := p.ParsePassageStrict(raw)
			if err != nil {
				return fmt.Errorf("parse passage: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), passage)
		},
	}
	cmd.Flags().Bool("strict", false, "fail instead of returning the fallback passage")
	return cmd
}

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck [dialogue-file]",
		Short: "Build an exercise deck from dialogue output and an optional passage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			seed, _ := cmd.Flags().GetUint64("seed")
			passagePath, _ := cmd.Flags().GetString("passage")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p := parser.New(app.ParserConfig(cfg.Parser))

			var opts []exercise.Option
			if seed != 0 {
				opts = append(opts, exercise.WithSeed(seed))
			}
			gen := exercise.New(app.ExerciseConfig(cfg.Exercise), opts...)

			var deck []domain.Exercise
			if passagePath == "" || len(args) > 0 {
				raw, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				turns, err := p.ParseDialogue(raw)
				if err != nil {
					return fmt.Errorf("parse dialogue: %w", err)
				}
				if count <= 0 {
					count = cfg.Practice.DefaultDeckSize
				}
				deck = gen.Generate(turns, count)
			}
			if passagePath != "" {
				raw, err := readFile(passagePath)
				if err != nil {
					return err
				}
				deck = append(deck, gen.FromPassage(p.ParsePassage(raw))...)
			}
			if deck == nil {
				deck = []domain.Exercise{}
			}
			return writeOutput(cmd.OutOrStdout(), deck)
		},
	}
	cmd.Flags().Int("count", 0, "target number of dialogue exercises (default from config)")
	cmd.Flags().Uint64("seed", 0, "random seed for a reproducible deck (0 = random)")
	cmd.Flags().String("passage", "", "file with reading passage output to append questions from")
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return readFile(args[0])
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func writeOutput(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
