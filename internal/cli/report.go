package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run analytical reports",
	}
	cmd.AddCommand(newReportRankCmd())
	cmd.AddCommand(newReportBudgetsCmd())
	cmd.AddCommand(newReportStatusCmd())
	cmd.AddCommand(newReportSharesCmd())
	cmd.AddCommand(newReportWorkloadCmd())
	cmd.AddCommand(newReportTitlesCmd())
	cmd.AddCommand(newReportAvgHoursCmd())
	cmd.AddCommand(newReportAvgOpenSalaryCmd())
	return cmd
}

func newReportRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Rank applicants by experience",
		Long:  "List applicants ranked by years of experience. Ties share a rank.",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			rows, err := backend.RankApplicantsByExperience()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("rank report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-24s  %d yrs\n", r.Rank, r.FullName, r.YearsExperience)
			}
			return nil
		},
	}
}

func newReportBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "budgets",
		Short: "Show committed and remaining budget per employer",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			rows, err := backend.EmployerBudgets()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("budgets report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s  budget %10.2f  committed %10.2f  remaining %10.2f\n",
					r.Name, r.Budget, r.Committed, r.Remaining)
			}
			return nil
		},
	}
}

func newReportStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Count open and filled positions per employer",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			rows, err := backend.PositionStatusCounts()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("status report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s  open %2d  filled %2d\n", r.Name, r.OpenCount, r.FilledCount)
			}
			return nil
		},
	}
}

func newReportSharesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shares",
		Short: "Show each position's salary against its employer's payroll",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			rows, err := backend.SalaryShares()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("shares report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s  %-20s  %10.2f of %10.2f\n",
					r.EmployerName, r.Title, r.Salary, r.EmployerTotal)
			}
			return nil
		},
	}
}

func newReportWorkloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Show assignment count and total hours per applicant",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			rows, err := backend.ApplicantWorkloads()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("workload report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s  %2d assignments  %6.1f hours\n",
					r.FullName, r.AssignmentCount, r.TotalHours)
			}
			return nil
		},
	}
}

func newReportTitlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "titles <employer-id>",
		Short: "Show an employer's open position titles as one line",
		Long: "Join an employer's open position titles, sorted alphabetically, into a\n" +
			"single comma-separated line. An employer with no open positions prints\n" +
			"an empty line.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			titles, err := backend.AdvertisedPositions(args[0])
			if err != nil {
				return exitError(exitUserError, fmt.Sprintf("titles report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"titles": titles})
			}
			fmt.Fprintln(cmd.OutOrStdout(), titles)
			return nil
		},
	}
}

func newReportAvgHoursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avg-hours <applicant-id>",
		Short: "Show an applicant's average assigned hours",
		Long:  "Average hours across an applicant's assignments; 0 when they have none.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			avg, err := backend.AverageAssignedHours(args[0])
			if err != nil {
				return exitError(exitUserError, fmt.Sprintf("avg-hours report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]float64{"average_hours": avg})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", avg)
			return nil
		},
	}
}

func newReportAvgOpenSalaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avg-open-salary",
		Short: "Show the average salary across open positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			avg, err := backend.AverageOpenSalary()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("avg-open-salary report: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]float64{"average_salary": avg})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", avg)
			return nil
		},
	}
}
