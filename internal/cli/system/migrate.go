package system

import (
	"fmt"

	"github.com/haikegani/QuitSmoke/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(cli.Migrator)
	if !ok {
		ctx.Println("The JSON store has no schema to migrate.")
		return nil
	}

	before, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if before > 0 && before < latest {
		if mgr, err := backupManager(ctx); err == nil {
			path, err := mgr.Create()
			if err != nil {
				return fmt.Errorf("failed to back up before migrating: %w", err)
			}
			ctx.Printf("Backed up database to %s\n", path)
		}
	}

	count, err := migrator.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Printf("No migrations to apply. Database is up to date (version %d).\n", before)
	} else {
		ctx.Printf("Successfully applied %d migration(s), version %d -> %d.\n", count, before, latest)
	}
	return nil
}
