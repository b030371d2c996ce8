package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/cli/plans"
	"github.com/haikegani/QuitSmoke/internal/cli/settings"
	"github.com/haikegani/QuitSmoke/internal/cli/system"
	"github.com/haikegani/QuitSmoke/internal/cli/usage"
	"github.com/haikegani/QuitSmoke/internal/config"
	"github.com/haikegani/QuitSmoke/internal/constants"
	apperrors "github.com/haikegani/QuitSmoke/internal/errors"
	"github.com/haikegani/QuitSmoke/internal/logger"
	"github.com/haikegani/QuitSmoke/internal/planner"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_file}"`
	DB      string `help:"SQLite path, .json file, PostgreSQL connection string, or 'keyring' to read the connection string from the OS keyring. Credentials must NOT be embedded in connection strings." placeholder:"TARGET"`
	User    string `help:"User whose plan and events are used."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize quitsmoke storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check the stored plan and events for problems."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Plan struct {
		Show     plans.PlanShowCmd     `cmd:"" help:"Show the current quit plan." default:"1"`
		Set      plans.PlanSetCmd      `cmd:"" help:"Change the quit plan."`
		Wizard   plans.PlanWizardCmd   `cmd:"" help:"Build a plan from a short questionnaire."`
		Schedule plans.PlanScheduleCmd `cmd:"" help:"Show upcoming daily limits."`
	} `cmd:"" help:"Manage the quit plan."`

	Puff     usage.PuffCmd        `cmd:"" help:"Log one puff or cigarette now."`
	Today    usage.TodayCmd       `cmd:"" help:"Show today's count and limit."`
	Progress usage.ProgressCmd    `cmd:"" help:"Show daily counts against the plan."`
	Stats    usage.StatsCmd       `cmd:"" help:"Show all-time statistics."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`

	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    system.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`

	Export struct {
		Metrics system.ExportMetricsCmd `cmd:"" help:"Write Prometheus metrics to a textfile."`
	} `cmd:"" help:"Export data for other tools."`

	DebugCmd system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd `cmd:"" hidden:"" help:"Send today's status as a notification (used by cron)."`
}

// needsLoad reports whether command reads the store through a loaded schema.
func needsLoad(command string) bool {
	switch strings.Fields(command)[0] {
	case "init", "migrate", "doctor", "keyring":
		return false
	case "debug":
		return command != "debug db-path"
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Quit plan tracker: log each puff against a daily limit that steps down over time."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
			"products":    strings.Join(planner.Keys(), ", "),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DB = config.ExpandPath(CLI.DB)
	}
	if CLI.User != "" {
		cfg.User = CLI.User
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		LogDir:    cfg.LogDir,
		ConfigDir: cfg.Dir(),
	}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "db", cfg.DB, "user", cfg.User)

	appCtx, err := cli.NewFromConfig(cfg)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer appCtx.Store.Close()

	if needsLoad(ctx.Command()) {
		if err := appCtx.Store.Load(); err != nil {
			appCtx.Store.Close()
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Store.Close()
		apperrors.Fatal(err)
	}
}
