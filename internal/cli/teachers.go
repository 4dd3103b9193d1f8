package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"univoice/internal/config"
	"univoice/internal/directory"
)

type teacherEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Login       string `json:"login"`
}

// NewTeachersCommand prints the directory as the server would load it.
func NewTeachersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "teachers",
		Short: "List the teacher directory and how each teacher logs in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dir, err := directory.New(cfg.Teachers, cfg.Auth.TeacherSharedPassword)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped rows: %v\n", err)
			}

			entries := make([]teacherEntry, 0)
			for _, record := range dir.All() {
				login := "none"
				switch {
				case record.CredentialHash != "":
					login = "password"
				case cfg.Auth.TeacherSharedPassword != "":
					login = "shared"
				}
				entries = append(entries, teacherEntry{
					ID:          record.ID,
					DisplayName: record.DisplayName,
					Email:       record.Email,
					Login:       login,
				})
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, entries)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tLOGIN")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.DisplayName, e.Email, e.Login)
			}
			return tw.Flush()
		},
	}
}
