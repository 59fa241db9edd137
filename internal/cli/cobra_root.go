package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/config"
	"manuscript-tracker/internal/logging"
	"manuscript-tracker/internal/repository/sqlite"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	config *config.Config
	repo   sqlite.Repository
	app    *App
	out    io.Writer
	errOut io.Writer

	// openRepository is replaced in tests
	openRepository func(*config.Config) (sqlite.Repository, error)
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader) *RootCommand {
	root := &RootCommand{
		loader:         loader,
		out:            os.Stdout,
		errOut:         os.Stderr,
		openRepository: config.CreateRepository,
	}

	root.cmd = &cobra.Command{
		Use:   "mt",
		Short: "Track the progress of a thesis manuscript",
		Long: `Manuscript Tracker (mt) records chapters, word counts, checklist tasks,
supervisor feedback and a reading list, and renders progress reports.

EXAMPLES:
  mt chapter add 1 "Introduction" --target 8000   # Add a chapter with a word target
  mt chapter add 9 "Appendix"                       # Variable target (not counted in progress)
  mt chapter words 1 4200                           # Record the current word count
  mt chapter status 1 drafting                      # Move a chapter along
  mt task add --chapter 1 "Write motivation"        # Checklist item for a chapter
  mt task add --phase Submission "Print copies"     # Global checklist item
  mt task toggle task-ab12cd34                      # Tick or untick a task
  mt feedback add --reviewer "Supervisor" "Clarify the research questions"
  mt lit add --authors "Knuth" --year 1984 --priority high "Literate Programming"
  mt report                                         # Progress table
  mt report --format markdown > PROGRESS.md         # Planning document
  mt export --format json --out tracker.json        # Snapshot for mt import
  mt serve                                          # HTTP API on 127.0.0.1:8080

CONFIGURATION:
  Priority: command-line flags > environment variables > .env file > config file > defaults
  Config file: ~/.mt/config.toml (override with MT_CONFIG or --config)

  MT_ENV                         development (./mt.db), testing (in-memory), production (default)
  MT_DB_DIR, MT_DB_FILENAME      Database location (default: ~/.mt/mt.db)
  MT_DB_QUERY_TIMEOUT            Query timeout (default: 10s)
  MT_DISPLAY_COLOR               auto, always or never (default: auto)
  MT_DISPLAY_BAR_WIDTH           Progress bar width (default: 20)
  MT_REPORT_DEFAULT_FORMAT       table, markdown, checklist, json or yaml
  MT_SERVER_ADDR                 Address for mt serve
  MT_BACKUP_PATH, MT_BACKUP_S3_BUCKET, MT_BACKUP_S3_KEY, MT_BACKUP_S3_REGION, MT_BACKUP_S3_ENDPOINT
  MT_DEBUG                       Enable debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetOutput redirects command output, mainly for tests
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// SetArgs sets the arguments instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and releases the repository afterwards
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides MT_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides MT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides MT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides MT_DB_QUERY_TIMEOUT)")

	// Display configuration
	flags.String("color", "", "Colour output: auto, always or never (overrides MT_DISPLAY_COLOR)")
	flags.Int("bar-width", 0, "Progress bar width (overrides MT_DISPLAY_BAR_WIDTH)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides MT_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides MT_APP_VERBOSE)")
}

// overridesFromFlags collects the global flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("color") {
		v, _ := flags.GetString("color")
		overrides.Color = &v
	}
	if flags.Changed("bar-width") {
		v, _ := flags.GetInt("bar-width")
		overrides.BarWidth = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	return overrides
}

// setup loads configuration and opens the repository on first use
func (r *RootCommand) setup() error {
	if r.app != nil {
		return nil
	}

	if path, _ := r.cmd.PersistentFlags().GetString("config"); path != "" {
		r.loader.WithConfigFile(path)
	}
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	if cfg.Application.Verbose {
		logging.SetVerbose(true)
	}
	logging.Debugf("environment %s, database %s", cfg.Application.Env, cfg.GetDatabasePath())

	repo, err := r.openRepository(cfg)
	if err != nil {
		return err
	}

	r.config = cfg
	r.repo = repo
	r.app = NewAppWithConfig(api.New(repo, api.WithConfig(cfg)), cfg)
	r.app.SetOutput(r.out, r.errOut)
	return nil
}

func (r *RootCommand) close() {
	if r.repo != nil {
		if err := r.repo.Close(); err != nil {
			logging.Debugf("closing repository: %v", err)
		}
		r.repo = nil
		r.app = nil
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// run executes a registered command with a timeout
func (r *RootCommand) run(cmd *cobra.Command, name string, args []string) error {
	if err := r.setup(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()
	return r.app.registry.Execute(ctx, name, args)
}

// flagArgs turns the changed local flags into key=value command options
func flagArgs(cmd *cobra.Command, names ...string) []string {
	var args []string
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			args = append(args, name+"="+f.Value.String())
		}
	}
	return args
}

// action builds a leaf command that forwards to a registered command
func (r *RootCommand) action(name, action string, flags ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		forwarded := make([]string, 0, len(args)+len(flags)+1)
		if action != "" {
			forwarded = append(forwarded, action)
		}
		forwarded = append(forwarded, args...)
		forwarded = append(forwarded, flagArgs(cmd, flags...)...)
		return r.run(cmd, name, forwarded)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.chapterCommand(),
		r.taskCommand(),
		r.feedbackCommand(),
		r.literatureCommand(),
		r.reportCommand(),
		r.checklistCommand(),
		r.exportCommand(),
		r.importCommand(),
		r.backupCommand(),
		r.serveCommand(),
	)
}

func (r *RootCommand) chapterCommand() *cobra.Command {
	chapterCmd := &cobra.Command{
		Use:   "chapter",
		Short: "Manage chapters, statuses and word counts",
	}

	addCmd := &cobra.Command{
		Use:   "add <ordinal> <title>",
		Short: "Add a chapter",
		Long: `Add a chapter with a unique ordinal. The target is a word count or
"variable"; variable targets are left out of overall progress.`,
		Args: cobra.MinimumNArgs(2),
		RunE: r.action("chapter", "add", "target"),
	}
	addCmd.Flags().String("target", "variable", "Word target, or \"variable\"")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List chapters",
		Args:  cobra.NoArgs,
		RunE:  r.action("chapter", "list"),
	}

	statusCmd := &cobra.Command{
		Use:   "status <ordinal> <status>",
		Short: "Set a chapter's status",
		Long: `Set a chapter's status. Statuses in order:
  not_started, outlining, drafting, revising, supervisor_review, final

Moving a chapter backwards is allowed and prints a warning.`,
		Args: cobra.MinimumNArgs(2),
		RunE: r.action("chapter", "status"),
	}

	wordsCmd := &cobra.Command{
		Use:   "words <ordinal> <count>",
		Short: "Record a chapter's current word count",
		Args:  cobra.ExactArgs(2),
		RunE:  r.action("chapter", "words"),
	}
	// A negative count reaches the api as an argument rather than an unknown flag.
	wordsCmd.Flags().SetInterspersed(false)

	targetCmd := &cobra.Command{
		Use:   "target <ordinal> <words|variable>",
		Short: "Change a chapter's word target",
		Args:  cobra.ExactArgs(2),
		RunE:  r.action("chapter", "target"),
	}

	renameCmd := &cobra.Command{
		Use:   "rename <ordinal> <title>",
		Short: "Rename a chapter",
		Args:  cobra.MinimumNArgs(2),
		RunE:  r.action("chapter", "rename"),
	}

	chapterCmd.AddCommand(addCmd, listCmd, statusCmd, wordsCmd, targetCmd, renameCmd)
	return chapterCmd
}

func (r *RootCommand) taskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage checklist tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a task to a chapter or the global list",
		Long: `Add an open checklist item. With --chapter the task belongs to that
chapter; otherwise it is global and may carry a workflow --phase.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.action("task", "add", "chapter", "phase"),
	}
	addCmd.Flags().Int("chapter", 0, "Chapter ordinal")
	addCmd.Flags().String("phase", "", "Workflow phase for global tasks")

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Tick or untick a task",
		Args:  cobra.ExactArgs(1),
		RunE:  r.action("task", "toggle"),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE:  r.action("task", "list", "chapter", "global", "open"),
	}
	listCmd.Flags().Int("chapter", 0, "Only tasks of this chapter")
	listCmd.Flags().Bool("global", false, "Only global tasks")
	listCmd.Flags().Bool("open", false, "Only unfinished tasks")

	taskCmd.AddCommand(addCmd, toggleCmd, listCmd)
	return taskCmd
}

func (r *RootCommand) feedbackCommand() *cobra.Command {
	feedbackCmd := &cobra.Command{
		Use:   "feedback",
		Short: "Log and close supervisor feedback",
	}

	addCmd := &cobra.Command{
		Use:   "add <feedback>",
		Short: "Append to the feedback log",
		Args:  cobra.ArbitraryArgs,
		RunE:  r.action("feedback", "add", "reviewer", "date", "action"),
	}
	addCmd.Flags().String("reviewer", "", "Who gave the feedback")
	addCmd.Flags().String("date", "", "Date given, YYYY-MM-DD (default: today)")
	addCmd.Flags().String("action", "", "Planned or taken action")

	doneCmd := &cobra.Command{
		Use:   "done <id> [action]",
		Short: "Mark feedback as addressed",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.action("feedback", "done"),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the feedback log",
		Args:  cobra.NoArgs,
		RunE:  r.action("feedback", "list", "open"),
	}
	listCmd.Flags().Bool("open", false, "Only entries still needing action")

	feedbackCmd.AddCommand(addCmd, doneCmd, listCmd)
	return feedbackCmd
}

func (r *RootCommand) literatureCommand() *cobra.Command {
	litCmd := &cobra.Command{
		Use:     "lit",
		Aliases: []string{"literature"},
		Short:   "Manage the reading list",
	}

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a reference",
		Args:  cobra.ArbitraryArgs,
		RunE:  r.action("lit", "add", "authors", "year", "priority", "status"),
	}
	addCmd.Flags().String("authors", "", "Authors")
	addCmd.Flags().String("year", "", "Year")
	addCmd.Flags().String("priority", "", "high, medium or low (default: medium)")
	addCmd.Flags().String("status", "", "not_read, reading, read or cited (default: not_read)")

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set the reading status of a reference",
		Args:  cobra.MinimumNArgs(2),
		RunE:  r.action("lit", "status"),
	}

	priorityCmd := &cobra.Command{
		Use:   "priority <id> <priority>",
		Short: "Set the priority of a reference",
		Args:  cobra.ExactArgs(2),
		RunE:  r.action("lit", "priority"),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List references, highest priority first",
		Args:  cobra.NoArgs,
		RunE:  r.action("lit", "list", "status", "priority"),
	}
	listCmd.Flags().String("status", "", "Only references with this reading status")
	listCmd.Flags().String("priority", "", "Only references with this priority")

	litCmd.AddCommand(addCmd, statusCmd, priorityCmd, listCmd)
	return litCmd
}

func (r *RootCommand) reportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show manuscript progress",
		Long: `Render the progress report.

Formats:
  table      aligned columns with progress bars (default)
  markdown   planning document with checklists and the feedback log
  checklist  tasks grouped by chapter and phase
  json, yaml machine-readable report`,
		Args: cobra.NoArgs,
		RunE: r.action("report", "", "format"),
	}
	reportCmd.Flags().StringP("format", "f", "", "Output format (overrides MT_REPORT_DEFAULT_FORMAT)")
	return reportCmd
}

func (r *RootCommand) checklistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checklist",
		Short: "Show all tasks grouped by chapter and phase",
		Args:  cobra.NoArgs,
		RunE:  r.action("checklist", ""),
	}
}

func (r *RootCommand) exportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tracker to a file",
		Long: `Export the tracker. markdown and csv export the progress report;
json and yaml export the full snapshot that mt import reads back.
The output file is replaced atomically.`,
		Args: cobra.NoArgs,
		RunE: r.action("export", "", "format", "out"),
	}
	exportCmd.Flags().StringP("format", "f", "", "markdown, json, yaml or csv (overrides MT_EXPORT_DEFAULT_FORMAT)")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	return exportCmd
}

func (r *RootCommand) importCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Seed an empty tracker from an exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  r.action("import", "", "format"),
	}
	importCmd.Flags().String("format", "", "json or yaml (default: from the file extension)")
	return importCmd
}

func (r *RootCommand) backupCommand() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a snapshot to the configured backup destinations",
		Long: `Write a snapshot to backup.path and, when backup.s3_bucket is set,
to S3. AWS credentials come from the standard AWS configuration chain.`,
		Args: cobra.NoArgs,
		RunE: r.action("backup", "", "format", "path"),
	}
	backupCmd.Flags().String("format", "", "json or yaml (overrides MT_BACKUP_FORMAT)")
	backupCmd.Flags().String("path", "", "Backup file (overrides MT_BACKUP_PATH)")
	return backupCmd
}

func (r *RootCommand) serveCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve progress over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.setup(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.app.registry.Execute(ctx, "serve", flagArgs(cmd, "addr"))
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides MT_SERVER_ADDR)")
	return serveCmd
}

// Command exposes the underlying cobra command, e.g. for completion scripts
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}
