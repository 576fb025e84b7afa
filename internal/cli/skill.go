package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhrlab/talentdb/internal/sqlite"
	"github.com/openhrlab/talentdb/pkg/types"
)

func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage applicant skills",
	}
	cmd.AddCommand(newSkillAddCmd())
	cmd.AddCommand(newSkillListCmd())
	cmd.AddCommand(newSkillDeleteCmd())
	cmd.AddCommand(newSkillImportCmd())
	return cmd
}

func newSkillAddCmd() *cobra.Command {
	var (
		applicantID string
		name        string
		level       int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a skill to an applicant",
		Long: "Insert a skill row and update the owning applicant's skill count in\n" +
			"the same transaction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableSkills)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}

			skill := &types.Skill{
				ApplicantID: applicantID,
				Name:        name,
				Level:       level,
			}
			id, err := table.Set("", skill)
			if err != nil {
				return exitError(exitUserError, fmt.Sprintf("add skill: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"skill_id": id})
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&applicantID, "applicant", "", "owning applicant ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "skill name (required)")
	cmd.Flags().IntVar(&level, "level", 3, "proficiency level, 1 to 5")
	cmd.MarkFlagRequired("applicant")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newSkillListCmd() *cobra.Command {
	var (
		applicantID string
		minLevel    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableSkills)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}

			filter := map[string]any{}
			if applicantID != "" {
				filter["applicant_id"] = applicantID
			}
			if minLevel > 0 {
				filter["min_level"] = minLevel
			}
			items, err := table.Fetch(filter)
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("list skills: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), items)
			}
			for _, item := range items {
				s, ok := item.(*types.Skill)
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s  level %d  (applicant %s)\n",
					s.SkillID, s.Name, s.Level, s.ApplicantID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&applicantID, "applicant", "", "filter by applicant ID")
	cmd.Flags().IntVar(&minLevel, "min-level", 0, "only skills at or above this level")
	return cmd
}

func newSkillDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <skill-id>",
		Short: "Delete a skill",
		Long: "Remove a skill row and update the owning applicant's skill count in\n" +
			"the same transaction.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableSkills)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}

			if err := table.Delete(args[0]); err != nil {
				return exitError(exitUserError, fmt.Sprintf("delete skill: %s", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func newSkillImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Bulk-import skills from a JSONL file",
		Long: "Read one skill per line from a JSONL file and insert them all in a\n" +
			"single transaction. Affected applicants' skill counts are recomputed\n" +
			"in one batch. On any invalid line nothing is imported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skills, err := sqlite.ReadSkillsJSONL(args[0])
			if err != nil {
				return exitError(exitUserError, fmt.Sprintf("read skills file: %s", err))
			}

			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			inserted, err := backend.ImportSkills(skills)
			if err != nil {
				return exitError(exitUserError, fmt.Sprintf("import skills: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]int{"imported": inserted})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d skills\n", inserted)
			return nil
		},
	}
}
