// SPDX-License-Identifier: EPL-2.0

// Command urduvox generates Urdu speech from text via a hosted TTS API
// or a local voice-cloning server, and runs the audio post-processing
// pipeline over the result.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urduvox/urduvox/internal/config"
	"github.com/urduvox/urduvox/pipeline"
	"github.com/urduvox/urduvox/synth"
	"github.com/urduvox/urduvox/synth/openai"
	"github.com/urduvox/urduvox/synth/xtts"
)

func main() {
	os.Exit(run())
}

type cliOptions struct {
	configPath string
	logLevel   string
	outDir     string

	text     string
	voice    string
	language string
	stem     string

	speed        float64
	normalize    bool
	normalizeSet bool
	peak         float64

	refPath    string
	similarity float64
	stability  float64
	style      float64
	seed       int

	inPath string
}

func run() int {
	var opts cliOptions
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "urduvox",
		Short:         "Urdu text-to-speech with voice cloning and audio post-processing",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			slog.SetDefault(newLogger(cfg.LogLevel))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&opts.outDir, "out-dir", "o", ".", "directory for output files")

	speakCmd := &cobra.Command{
		Use:   "speak",
		Short: "Synthesize Urdu text with the hosted TTS backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.normalizeSet = cmd.Flags().Changed("normalize")
			syn := func() (synth.Synthesizer, error) {
				key := cfg.APIKey()
				if key == "" {
					return nil, fmt.Errorf("no API key: set %s", cfg.OpenAI.APIKeyEnv)
				}
				return openai.New(key,
					openai.WithModel(cfg.OpenAI.Model),
					openai.WithVoice(cfg.OpenAI.Voice),
					openai.WithFormat(cfg.OpenAI.Format),
				)
			}
			req := synth.Request{
				Text:     opts.text,
				Voice:    opts.voice,
				Language: opts.language,
			}
			return runPipeline(cmd.Context(), cfg, opts, syn, req)
		},
	}
	addSynthesisFlags(speakCmd, &opts)
	rootCmd.AddCommand(speakCmd)

	cloneCmd := &cobra.Command{
		Use:   "clone",
		Short: "Synthesize with the local voice-cloning server, conditioned on a reference clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.normalizeSet = cmd.Flags().Changed("normalize")
			var ref []byte
			if opts.refPath != "" {
				data, err := os.ReadFile(opts.refPath)
				if err != nil {
					return fmt.Errorf("read reference clip: %w", err)
				}
				ref = data
			}
			syn := func() (synth.Synthesizer, error) {
				return xtts.New(cfg.XTTS.ServerURL,
					xtts.WithLanguage(cfg.XTTS.Language),
					xtts.WithTimeout(cfg.XTTS.Timeout),
				), nil
			}
			req := synth.Request{
				Text:       opts.text,
				Voice:      opts.voice,
				Language:   opts.language,
				Reference:  ref,
				Similarity: opts.similarity,
				Stability:  opts.stability,
				Style:      opts.style,
				Seed:       opts.seed,
			}
			return runPipeline(cmd.Context(), cfg, opts, syn, req)
		},
	}
	addSynthesisFlags(cloneCmd, &opts)
	cloneCmd.Flags().StringVarP(&opts.refPath, "ref", "r", "", "reference audio clip for voice cloning")
	cloneCmd.Flags().Float64Var(&opts.similarity, "similarity", 0, "cloning similarity (backend-defined)")
	cloneCmd.Flags().Float64Var(&opts.stability, "stability", 0, "cloning stability (backend-defined)")
	cloneCmd.Flags().Float64Var(&opts.style, "style", 0, "cloning style weight (backend-defined)")
	cloneCmd.Flags().IntVar(&opts.seed, "seed", 0, "cloning seed (backend-defined)")
	rootCmd.AddCommand(cloneCmd)

	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Run only the post-processing leg over an existing audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.normalizeSet = cmd.Flags().Changed("normalize")
			data, err := os.ReadFile(opts.inPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			p, err := pipeline.New(pipelineConfig(cfg, opts), nil)
			if err != nil {
				return err
			}
			res, err := p.Finalize(data, "")
			if err != nil {
				return err
			}
			return writeResult(res, opts.outDir)
		},
	}
	processCmd.Flags().StringVarP(&opts.inPath, "in", "i", "", "input audio file (wav, mp3, ogg, aiff)")
	processCmd.MarkFlagRequired("in")
	addProcessingFlags(processCmd, &opts)
	rootCmd.AddCommand(processCmd)

	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "List available voices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Provider == "xtts" {
				client := xtts.New(cfg.XTTS.ServerURL, xtts.WithTimeout(cfg.XTTS.Timeout))
				names, err := client.ListSpeakers(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Println(strings.Join(names, "\n"))
				return nil
			}
			fmt.Println(strings.Join(openai.BuiltinVoices, "\n"))
			return nil
		},
	}
	rootCmd.AddCommand(voicesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "urduvox: %v\n", err)
		return 1
	}
	return 0
}

func addSynthesisFlags(cmd *cobra.Command, opts *cliOptions) {
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Urdu text to synthesize")
	cmd.MarkFlagRequired("text")
	cmd.Flags().StringVar(&opts.voice, "voice", "", "voice identifier (backend default when empty)")
	cmd.Flags().StringVar(&opts.language, "language", "", "language tag (config default when empty)")
	addProcessingFlags(cmd, opts)
}

func addProcessingFlags(cmd *cobra.Command, opts *cliOptions) {
	cmd.Flags().Float64VarP(&opts.speed, "speed", "s", 0, "speed factor (>1 faster, <1 slower; 0 uses config default)")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", true, "peak-normalize the output")
	cmd.Flags().Float64Var(&opts.peak, "peak", 0, "normalization ceiling in (0, 1] (0 uses config default)")
	cmd.Flags().StringVar(&opts.stem, "name", "", "output filename stem (config default when empty)")
}

// pipelineConfig merges config-file defaults with the flags the user
// actually set.
func pipelineConfig(cfg *config.Config, opts cliOptions) pipeline.Config {
	pc := pipeline.Config{
		TargetSampleRate: cfg.Pipeline.TargetSampleRate,
		SilenceThreshold: cfg.Pipeline.SilenceThreshold,
		TrimPadSamples:   cfg.Pipeline.TrimPadSamples,
		Normalize:        cfg.Pipeline.Normalize,
		NormalizePeak:    cfg.Pipeline.NormalizePeak,
		SpeedFactor:      cfg.Pipeline.SpeedFactor,
		OutputStem:       cfg.Pipeline.OutputStem,
	}
	if opts.normalizeSet {
		pc.Normalize = opts.normalize
	}
	if opts.speed > 0 {
		pc.SpeedFactor = opts.speed
	}
	if opts.peak > 0 {
		pc.NormalizePeak = opts.peak
	}
	if opts.stem != "" {
		pc.OutputStem = opts.stem
	}
	return pc
}

func runPipeline(ctx context.Context, cfg *config.Config, opts cliOptions, factory pipeline.SynthFactory, req synth.Request) error {
	p, err := pipeline.New(pipelineConfig(cfg, opts), factory)
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrDecode):
			return fmt.Errorf("audio could not be decoded: %w", err)
		case errors.Is(err, pipeline.ErrCollaborator):
			return fmt.Errorf("synthesis backend failed: %w", err)
		default:
			return err
		}
	}

	return writeResult(res, opts.outDir)
}

func writeResult(res *pipeline.Result, dir string) error {
	path := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("audio written", "path", path, "bytes", len(res.Data), "rate", res.SampleRate)
	fmt.Println(path)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
