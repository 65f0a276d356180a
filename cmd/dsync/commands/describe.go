package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dsync/internal/filter"
	"dsync/internal/job/config"
)

func newDescribeCmd() *cobra.Command {
	var jobFile, dateLayout string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the rules of a job file in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jobFile == "" {
				return errors.New("the job file must be given")
			}
			j, err := config.Load(jobFile, config.Options{DateLayout: dateLayout})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "job %q, source %s\n", j.Name, j.SrcDir)
			for i, rule := range j.SortedRules(nil) {
				_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, rule.Describe())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&jobFile, "job", "", "job file with the filters to describe")
	cmd.Flags().StringVar(&dateLayout, "datelayout", filter.DefaultDateLayout, "Go time layout used to display dates")

	return cmd
}
