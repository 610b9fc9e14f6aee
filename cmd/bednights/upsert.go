package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/service"
)

func upsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsert <entity> field=value...",
		Short: "Create or update a record",
		Long: `Create a record, or update one when id=<id> is given. Updates start from
the current record, so only changed fields need to be passed. A value of
"null" clears the field. Requires the admin role.`,
		Example: `  bednights upsert countries name=Kenya code=KE
  bednights upsert agencies id=7 name="Safari Co" email=null`,
		Args: cobra.MinimumNArgs(2),
		RunE: runUpsert,
	}
	return cmd
}

func runUpsert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	changes, err := forms.ParseAssignments(args[1:])
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.Session().RequireAdmin(); err != nil {
		return err
	}

	state, err := a.openPage(ctx, cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}

	rec := service.Merge(state.Table().Records(), changes)
	res, err := a.mutator.Save(ctx, state.Page, rec)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("cannot save %s: %w", state.Page.Title(), verr)
		}
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s saved (%d inserted, %d updated)",
		state.Page.Title(), res.InsertedCount, res.UpdatedCount)))
	if res.Message != "" {
		fmt.Fprintln(out, cli.FormatInfo(res.Message))
	}
	return nil
}
