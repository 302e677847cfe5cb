package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rhuss/codepad/pkg/api"
)

func newProblemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List judge problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			problems, err := c.ListProblems(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDIFFICULTY\tTIME\tMEMORY")
			for _, p := range problems {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d ms\t%d MB\n", p.ID, p.Title, p.Difficulty, p.TimeLimitMs, p.MemoryLimit)
			}
			return tw.Flush()
		},
	}
}

func newProblemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "problem <id>",
		Short: "Show a problem and its sample test cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProblemID(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			detail, err := c.GetProblem(cmd.Context(), id)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			p := detail.Problem
			fmt.Fprintf(w, "%d. %s [%s]\n", p.ID, p.Title, p.Difficulty)
			fmt.Fprintf(w, "Limits: %d ms, %d MB\n\n", p.TimeLimitMs, p.MemoryLimit)
			fmt.Fprintf(w, "%s\n", p.Description)
			section(w, "Input", p.InputFormat)
			section(w, "Output", p.OutputFormat)
			section(w, "Constraints", p.Constraints)
			for i, tc := range detail.SampleCases {
				section(w, fmt.Sprintf("Sample %d input", i+1), tc.InputData)
				section(w, fmt.Sprintf("Sample %d output", i+1), tc.ExpectedOutput)
			}
			return nil
		},
	}
}

func newSubmitCmd(a *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "submit <problem-id> <file>",
		Short: "Submit a solution to the judge",
		Long: `Submit a solution file. The verdict (AC, WA, TLE, MLE, RE, CE) is
printed with the number of passed test cases; anything other than AC
exits non-zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProblemID(args[0])
			if err != nil {
				return err
			}
			language, err := a.resolveLanguage(lang, args[1])
			if err != nil {
				return err
			}
			code, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			req := &api.SubmissionRequest{ProblemID: id, Language: language, Code: string(code)}
			if apiErr := api.ValidateSubmissionRequest(req); apiErr != nil {
				return apiErr
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			res, err := c.SubmitSolution(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Submission %d: %s\n", res.SubmissionID, res.Verdict)
			if res.Message != "" {
				fmt.Fprintln(w, res.Message)
			}
			fmt.Fprintf(w, "Passed: %d/%d\n", res.TestCasesPassed, res.TotalTestCases)
			fmt.Fprintf(w, "Time: %d ms, Memory: %d KB\n", res.ExecutionTimeMs, res.MemoryUsedKB)
			if !res.Accepted() {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language (default: from file extension)")
	return cmd
}

func parseProblemID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid problem id %q", s)
	}
	return id, nil
}

func section(w io.Writer, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(w, "\n%s:\n%s\n", title, body)
}
