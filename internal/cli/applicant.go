package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhrlab/talentdb/pkg/types"
)

func newApplicantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applicant",
		Short: "Manage applicants",
	}
	cmd.AddCommand(newApplicantAddCmd())
	cmd.AddCommand(newApplicantListCmd())
	cmd.AddCommand(newApplicantShowCmd())
	cmd.AddCommand(newApplicantDeleteCmd())
	return cmd
}

func newApplicantAddCmd() *cobra.Command {
	var (
		name    string
		years   int
		desired float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an applicant",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableApplicants)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}

			applicant := &types.Applicant{
				FullName:        name,
				YearsExperience: years,
				DesiredSalary:   desired,
			}
			id, err := table.Set("", applicant)
			if err != nil {
				return exitError(exitUserError, fmt.Sprintf("add applicant: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"applicant_id": id})
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name (required)")
	cmd.Flags().IntVar(&years, "years", 0, "years of experience")
	cmd.Flags().Float64Var(&desired, "desired-salary", 0, "desired salary")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newApplicantListCmd() *cobra.Command {
	var minYears int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applicants",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableApplicants)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}

			filter := map[string]any{}
			if minYears > 0 {
				filter["min_years"] = minYears
			}
			items, err := table.Fetch(filter)
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("list applicants: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), items)
			}
			for _, item := range items {
				a, ok := item.(*types.Applicant)
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s  %2d yrs  %d skills\n",
					a.ApplicantID, a.FullName, a.YearsExperience, a.SkillCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&minYears, "min-years", 0, "only applicants with at least this many years of experience")
	return cmd
}

func newApplicantShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <applicant-id>",
		Short: "Show a single applicant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableApplicants)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}

			item, err := table.Get(args[0])
			if err != nil {
				return exitError(exitUserError, fmt.Sprintf("show applicant: %s", err))
			}
			a, ok := item.(*types.Applicant)
			if !ok {
				return exitError(exitSysError, "unexpected entity type")
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), a)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", a.ApplicantID)
			fmt.Fprintf(out, "Name:        %s\n", a.FullName)
			fmt.Fprintf(out, "Experience:  %d years\n", a.YearsExperience)
			fmt.Fprintf(out, "Desired:     %.2f\n", a.DesiredSalary)
			fmt.Fprintf(out, "Skills:      %d\n", a.SkillCount)
			return nil
		},
	}
}

func newApplicantDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <applicant-id>",
		Short: "Delete an applicant and their skills and assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableApplicants)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}

			if err := table.Delete(args[0]); err != nil {
				return exitError(exitUserError, fmt.Sprintf("delete applicant: %s", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}
