package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mind-engage/mindengage-seminar/internal/assessment"
)

type scoreFlags struct {
	answers string
	format  string
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a questionnaire answer file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.answers, "answers", "", "YAML file mapping question id to answer (- for stdin)")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func runScore(stdin io.Reader, stdout, stderr io.Writer, f *scoreFlags) error {
	if f.format != "text" && f.format != "json" {
		return exitError(exitInput, "unknown format %q (want text or json)", f.format)
	}
	answers, err := readAnswers(stdin, f.answers)
	if err != nil {
		return exitError(exitInput, "failed to read answers: %v", err)
	}

	res, err := assessment.Default().Assess(answers)
	if err != nil {
		var ve *assessment.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Fields {
				fmt.Fprintf(stderr, "%s: %s\n", fe.Field, fe.Message)
			}
			return exitError(exitValidation, "%d answer(s) invalid", len(ve.Fields))
		}
		return err
	}

	if f.format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return writeScoreText(stdout, res)
}

func readAnswers(stdin io.Reader, path string) (assessment.AnswerSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	answers := assessment.AnswerSet{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func writeScoreText(w io.Writer, res assessment.Result) error {
	fmt.Fprintf(w, "Score: %d / %d\n", res.Score, res.MaxScore)
	fmt.Fprintf(w, "Level: %s\n\n", res.Tier)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range res.Sections {
		fmt.Fprintf(tw, "%s\t%d / %d\n", s.Title, s.Points, s.MaxPoints)
	}
	return tw.Flush()
}
