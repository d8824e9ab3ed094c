package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/diary"
	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/model"
)

// entryFlags are the form fields shared by add and edit.
type entryFlags struct {
	date     string
	title    string
	hours    string
	mood     string
	category string
	tasks    string
	skills   string
	links    string
	photos   []string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Entry date (YYYY-MM-DD); defaults to today for add")
	cmd.Flags().StringVar(&f.title, "title", "", "Short title")
	cmd.Flags().StringVar(&f.hours, "hours", "", "Hours spent, e.g. 7.5")
	cmd.Flags().StringVar(&f.mood, "mood", "", "Mood tag, e.g. 🙂")
	cmd.Flags().StringVar(&f.category, "category", "", "Category: intern, holiday, study")
	cmd.Flags().StringVar(&f.tasks, "tasks", "", "What you did; \\n starts a new line")
	cmd.Flags().StringVar(&f.skills, "skills", "", "Comma-separated skill tags")
	cmd.Flags().StringVar(&f.links, "links", "", "Comma-separated URLs")
	cmd.Flags().StringArrayVar(&f.photos, "photo", nil, "Photo file to attach (repeatable); replaces existing photos on edit")
}

// apply copies the flags the user set onto e.
func (f *entryFlags) apply(cmd *cobra.Command, e *model.Entry) {
	changed := cmd.Flags().Changed
	if changed("date") {
		e.Date = f.date
	}
	if changed("title") {
		e.Title = f.title
	}
	if changed("hours") {
		e.Hours = model.ParseHours(f.hours)
	}
	if changed("mood") {
		e.Mood = f.mood
	}
	if changed("category") {
		e.Category = model.Category(strings.TrimSpace(f.category))
	}
	if changed("tasks") {
		e.Tasks = strings.ReplaceAll(f.tasks, `\n`, "\n")
	}
	if changed("skills") {
		e.Skills = splitList(f.skills)
	}
	if changed("links") {
		e.Links = splitList(f.links)
	}
}

var (
	addFlags  entryFlags
	editFlags entryFlags
	deleteYes bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a diary entry",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an entry; flags you leave out keep their values",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	addFlags.bind(addCmd)
	editFlags.bind(editCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()
	a := openApp(ctx, now)
	defer a.close()

	e := model.Entry{Date: a.ctrl.State().NewEntryDate(now), Category: model.Intern}
	addFlags.apply(cmd, &e)
	return submit(ctx, a, e, addFlags.photos)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp(ctx, time.Now())
	defer a.close()

	e, err := a.ctrl.Store().Get(args[0])
	if err != nil {
		a.fail(err)
	}
	editFlags.apply(cmd, &e)
	return submit(ctx, a, e, editFlags.photos)
}

func submit(ctx context.Context, a *app, e model.Entry, photos []string) error {
	saved, err := a.ctrl.Submit(ctx, diary.Submission{Entry: e, PhotoPaths: photos})
	if err != nil {
		a.fail(err)
	}
	fmt.Printf("%s %s  %s  %s\n", a.printer.Sprintf(i18n.KeyNoticeSaved), saved.ID, saved.Date, saved.Title)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp(ctx, time.Now())
	defer a.close()

	e, err := a.ctrl.Store().Get(args[0])
	if err != nil {
		a.fail(err)
	}
	if !deleteYes && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete %q (%s)?", e.Title, e.Date)) {
		return nil
	}
	if err := a.ctrl.Store().Delete(ctx, e.ID); err != nil {
		a.fail(err)
	}
	fmt.Println(a.printer.Sprintf(i18n.KeyNoticeDeleted))
	return nil
}
