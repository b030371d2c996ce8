package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "quitsmoke.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()

	for i, at := range []time.Time{
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
	} {
		e := models.UsageEvent{ID: string(rune('a' + i)), UserID: "local", OccurredAt: at}
		if err := store.AppendEvent(e); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}
	return dbPath
}

func countEvents(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", dbPath, err)
	}
	defer store.Close()
	events, err := store.ListEvents("local", time.Time{})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	return len(events)
}

func fixedClock(mgr *Manager, start time.Time) {
	now := start
	mgr.now = func() time.Time {
		t := now
		now = now.Add(time.Hour)
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixedClock(mgr, time.Date(2024, 3, 1, 20, 15, 0, 0, time.Local))

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), DirName) {
		t.Errorf("backup written to %s, want inside %s", path, mgr.Dir())
	}
	if filepath.Base(path) != "quitsmoke-20240301-201500.db" {
		t.Errorf("backup name = %s", filepath.Base(path))
	}
	if got := countEvents(t, path); got != 2 {
		t.Errorf("backup holds %d events, want 2", got)
	}
}

func TestCreate_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Create() error = %v, want missing database error", err)
	}
}

func TestCreate_SameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	at := time.Date(2024, 3, 1, 20, 15, 0, 0, time.Local)
	mgr.now = func() time.Time { return at }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	fixedClock(mgr, start)

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", MaxBackups, len(backups))
	}
	newest := start.Add(time.Duration(MaxBackups+2) * time.Hour)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
	oldest := start.Add(3 * time.Hour)
	if !backups[len(backups)-1].Timestamp.Equal(oldest) {
		t.Errorf("oldest kept backup = %v, want %v", backups[len(backups)-1].Timestamp, oldest)
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List on missing dir failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "quitsmoke-garbage.db", "other-20240301-101010.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be recorded")
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixedClock(mgr, time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	extra := models.UsageEvent{ID: "late", UserID: "local", OccurredAt: time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)}
	if err := store.AppendEvent(extra); err != nil {
		t.Fatal(err)
	}
	store.Close()
	if got := countEvents(t, dbPath); got != 3 {
		t.Fatalf("expected 3 events before restore, got %d", got)
	}

	resolved, err := mgr.Resolve(filepath.Base(snapshot))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	previous, err := mgr.Restore(resolved)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if got := countEvents(t, dbPath); got != 2 {
		t.Errorf("expected 2 events after restore, got %d", got)
	}
	if previous == "" {
		t.Fatal("expected a pre-restore backup")
	}
	if got := countEvents(t, previous); got != 3 {
		t.Errorf("pre-restore backup holds %d events, want 3", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestore_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not a database, just text padding it out"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("Restore should reject a non-SQLite file")
	}
	if got := countEvents(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d events", got)
	}

	if _, err := mgr.Resolve("nope.db"); err == nil {
		t.Error("Resolve should fail for an unknown backup")
	}
}
