package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

var (
	signalListTag  string
	signalListJSON bool

	signalAddTitle    string
	signalAddContext  string
	signalAddWhy      string
	signalAddTags     []string
	signalAddFollowUp bool
	signalAddNotes    string

	signalEditTitle    string
	signalEditContext  string
	signalEditWhy      string
	signalEditTags     []string
	signalEditFollowUp bool
	signalEditNotes    string
)

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Manage curated signals",
	Long:  `Create, inspect, edit and search the curated signal log.`,
}

var signalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List signals, newest first",
	RunE:  runSignalList,
}

var signalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new signal",
	Long: `Records a new signal. Title, rationale and at least one tag are
required; everything else is optional.`,
	RunE: runSignalAdd,
}

var signalShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one signal",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignalShow,
}

var signalEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a signal",
	Long: `Edits a signal. Only the provided flags change; omitted fields keep
their current value. The creation date is never touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignalEdit,
}

var signalDeleteCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a signal",
	Args:    cobra.ExactArgs(1),
	RunE:    runSignalDelete,
}

var signalSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search signals",
	Long: `Searches title, source context and rationale for the query,
case-insensitively.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignalSearch,
}

var signalTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag vocabulary",
	RunE:  runSignalTags,
}

func init() {
	signalListCmd.Flags().StringVar(&signalListTag, "tag", "", "only signals carrying this tag")
	signalListCmd.Flags().BoolVar(&signalListJSON, "json", false, "output as JSON")

	signalAddCmd.Flags().StringVarP(&signalAddTitle, "title", "t", "", "signal title (required)")
	signalAddCmd.Flags().StringVarP(&signalAddContext, "context", "c", "", "where it was observed")
	signalAddCmd.Flags().StringVarP(&signalAddWhy, "why", "w", "", "why it matters (required)")
	signalAddCmd.Flags().StringSliceVar(&signalAddTags, "tags", nil, "category tags (required, comma-separated)")
	signalAddCmd.Flags().BoolVar(&signalAddFollowUp, "follow-up", false, "mark for follow-up")
	signalAddCmd.Flags().StringVar(&signalAddNotes, "notes", "", "free-form notes")

	signalEditCmd.Flags().StringVarP(&signalEditTitle, "title", "t", "", "signal title")
	signalEditCmd.Flags().StringVarP(&signalEditContext, "context", "c", "", "where it was observed")
	signalEditCmd.Flags().StringVarP(&signalEditWhy, "why", "w", "", "why it matters")
	signalEditCmd.Flags().StringSliceVar(&signalEditTags, "tags", nil, "category tags (comma-separated)")
	signalEditCmd.Flags().BoolVar(&signalEditFollowUp, "follow-up", false, "mark for follow-up")
	signalEditCmd.Flags().StringVar(&signalEditNotes, "notes", "", "free-form notes")

	signalCmd.AddCommand(signalListCmd)
	signalCmd.AddCommand(signalAddCmd)
	signalCmd.AddCommand(signalShowCmd)
	signalCmd.AddCommand(signalEditCmd)
	signalCmd.AddCommand(signalDeleteCmd)
	signalCmd.AddCommand(signalSearchCmd)
	signalCmd.AddCommand(signalTagsCmd)
	rootCmd.AddCommand(signalCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func runSignalList(cmd *cobra.Command, _ []string) error {
	if signalService == nil {
		return errors.New("signal service not configured")
	}

	ctx := cmd.Context()
	var (
		signals []domain.Signal
		err     error
	)
	if signalListTag != "" {
		signals, err = signalService.FilterByTag(ctx, signalListTag)
	} else {
		signals, err = signalService.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("listing signals: %w", err)
	}

	if signalListJSON {
		return outputJSON(cmd, signals)
	}
	outputSignalTable(cmd, signals)
	return nil
}

func runSignalAdd(cmd *cobra.Command, _ []string) error {
	if signalService == nil {
		return errors.New("signal service not configured")
	}

	signal, err := signalService.Create(cmd.Context(), domain.SignalDraft{
		Title:          signalAddTitle,
		SourceContext:  signalAddContext,
		WhyItMatters:   signalAddWhy,
		CategoryTags:   signalAddTags,
		FollowUpNeeded: signalAddFollowUp,
		Notes:          signalAddNotes,
	})
	if err != nil {
		return fmt.Errorf("creating signal: %w", err)
	}

	cmd.Printf("Created signal %d: %s\n", signal.ID, signal.Title)
	return nil
}

func runSignalShow(cmd *cobra.Command, args []string) error {
	if signalService == nil {
		return errors.New("signal service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	signal, err := signalService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("getting signal %d: %w", id, err)
	}

	cmd.Printf("[%d] %s\n", signal.ID, signal.Title)
	cmd.Printf("  Created:   %s\n", signal.DateCreated.Format("2006-01-02 15:04"))
	if signal.SourceContext != "" {
		cmd.Printf("  Context:   %s\n", signal.SourceContext)
	}
	cmd.Printf("  Why:       %s\n", signal.WhyItMatters)
	cmd.Printf("  Tags:      %s\n", strings.Join(signal.CategoryTags, ", "))
	if signal.FollowUpNeeded {
		cmd.Println("  Follow-up: yes")
	}
	if signal.Notes != "" {
		cmd.Printf("  Notes:     %s\n", signal.Notes)
	}
	return nil
}

func runSignalEdit(cmd *cobra.Command, args []string) error {
	if signalService == nil {
		return errors.New("signal service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	existing, err := signalService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting signal %d: %w", id, err)
	}

	// Start from the current values, overlay the provided flags
	draft := domain.SignalDraft{
		Title:          existing.Title,
		SourceContext:  existing.SourceContext,
		WhyItMatters:   existing.WhyItMatters,
		CategoryTags:   existing.CategoryTags,
		FollowUpNeeded: existing.FollowUpNeeded,
		Notes:          existing.Notes,
	}
	flags := cmd.Flags()
	if flags.Changed("title") {
		draft.Title = signalEditTitle
	}
	if flags.Changed("context") {
		draft.SourceContext = signalEditContext
	}
	if flags.Changed("why") {
		draft.WhyItMatters = signalEditWhy
	}
	if flags.Changed("tags") {
		draft.CategoryTags = signalEditTags
	}
	if flags.Changed("follow-up") {
		draft.FollowUpNeeded = signalEditFollowUp
	}
	if flags.Changed("notes") {
		draft.Notes = signalEditNotes
	}

	updated, err := signalService.Update(ctx, id, draft)
	if err != nil {
		return fmt.Errorf("updating signal %d: %w", id, err)
	}

	cmd.Printf("Updated signal %d: %s\n", updated.ID, updated.Title)
	return nil
}

func runSignalDelete(cmd *cobra.Command, args []string) error {
	if signalService == nil {
		return errors.New("signal service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := signalService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("deleting signal %d: %w", id, err)
	}

	cmd.Printf("Deleted signal %d\n", id)
	return nil
}

func runSignalSearch(cmd *cobra.Command, args []string) error {
	if signalService == nil {
		return errors.New("signal service not configured")
	}

	signals, err := signalService.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("searching signals: %w", err)
	}

	outputSignalTable(cmd, signals)
	return nil
}

func runSignalTags(cmd *cobra.Command, _ []string) error {
	if signalService == nil {
		return errors.New("signal service not configured")
	}

	tags, err := signalService.Tags(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}

	if len(tags) == 0 {
		cmd.Println("No tags yet.")
		return nil
	}
	for _, tag := range tags {
		cmd.Println(tag)
	}
	return nil
}

func outputSignalTable(cmd *cobra.Command, signals []domain.Signal) {
	if len(signals) == 0 {
		cmd.Println("No signals found.")
		return
	}

	for i := range signals {
		s := &signals[i]
		marker := " "
		if s.FollowUpNeeded {
			marker = "!"
		}
		cmd.Printf("%s [%d] %s\n", marker, s.ID, s.Title)
		cmd.Printf("    %s | %s\n",
			s.DateCreated.Format("2006-01-02"),
			strings.Join(s.CategoryTags, ", "))
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
