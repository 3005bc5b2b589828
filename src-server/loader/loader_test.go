package loader_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogbot/src-server/handler"
	"cogbot/src-server/interaction"
	"cogbot/src-server/interaction/interactiontest"
	"cogbot/src-server/loader"
	"cogbot/src-server/registry"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"
)

func writeUnit(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// captureLog sends the default logger to a buffer until the test ends.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(utils.NewLogHandler(&buf, slog.LevelDebug, true)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func countLines(buf *bytes.Buffer, substr string) int {
	n := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func testTable() *handler.Table {
	table := handler.NewTable()
	table.Register("test.reply", func(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
		content := u.Param("content", "")
		return unit.Handler{
			Invoke: func(ctx context.Context, e interaction.Event) error {
				return interaction.Reply(e, content, true)
			},
		}, nil
	})
	table.Register("test.broken", func(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
		return unit.Handler{}, errors.New("broken on purpose")
	})
	table.Register("test.empty", func(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
		return unit.Handler{}, nil
	})
	return table
}

func newLoader(t *testing.T) (*loader.Loader, *utils.AppState, string) {
	t.Helper()
	dir := t.TempDir()
	as := utils.NewLocalAppState(&utils.Config{})
	l := loader.New(as, testTable(), loader.DefaultRoots(dir))
	as.Reloader = l
	return l, as, dir
}

// reply runs the record registered under key and returns what it said.
func reply(t *testing.T, reg *unit.Registry, kind interaction.Kind, key string) string {
	t.Helper()
	rec, ok := reg.Lookup(key)
	if !ok {
		t.Fatal(key, "not found")
	}
	e := interactiontest.New(kind, key)
	if err := rec.Invoke(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	return e.Contents()[0]
}

func button(id, content string) string {
	return "handler = \"test.reply\"\ncustom_id = \"" + id + "\"\n[params]\ncontent = \"" + content + "\"\n"
}

func TestLoadIntoCreatesMissingRoot(t *testing.T) {
	l, as, dir := newLoader(t)
	root := filepath.Join(dir, "nowhere", "buttons")

	report := l.LoadInto(interaction.KindButton, as.Buttons, root)
	if report != (loader.Report{}) {
		t.Error("expected an empty report", report)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Error("missing root should have been created", err)
	}
}

func TestLoadIntoNestedAndFailures(t *testing.T) {
	l, as, dir := newLoader(t)
	root := filepath.Join(dir, "buttons")

	writeUnit(t, root, "top.toml", button("top", "top"))
	writeUnit(t, root, "a/one.toml", button("one", "one"))
	writeUnit(t, root, "a/b/c/deep.toml", button("deep", "deep"))
	writeUnit(t, root, "a/notes.txt", "not a unit")
	// failed
	writeUnit(t, root, "bad/syntax.toml", "handler = ")
	writeUnit(t, root, "bad/shape.toml", "handler = \"test.reply\"\ncustom_id = 5\n")
	writeUnit(t, root, "bad/factory.toml", "handler = \"test.broken\"\ncustom_id = \"broken\"\n")
	writeUnit(t, root, "bad/two_ids.toml", "handler = \"test.reply\"\ncustom_id = \"x\"\ncustom_id_prefix = \"x\"\n")
	writeUnit(t, root, "bad/regexp.toml", "handler = \"test.reply\"\ncustom_id_pattern = \"(\"\n")
	// skipped
	writeUnit(t, root, "skip/no_handler.toml", "custom_id = \"nohandler\"\n")
	writeUnit(t, root, "skip/no_id.toml", "handler = \"test.reply\"\n")
	writeUnit(t, root, "skip/unknown.toml", "handler = \"test.missing\"\ncustom_id = \"unknown\"\n")
	writeUnit(t, root, "skip/empty.toml", "handler = \"test.empty\"\ncustom_id = \"empty\"\n")

	report := l.LoadInto(interaction.KindButton, as.Buttons, root)
	want := loader.Report{Files: 12, Loaded: 3, Skipped: 4, Failed: 5}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}
	for _, id := range []string{"top", "one", "deep"} {
		if got := reply(t, as.Buttons, interaction.KindButton, id); got != id {
			t.Error(id, "replied", got)
		}
	}
	for _, id := range []string{"broken", "nohandler", "unknown", "empty", "x"} {
		if _, ok := as.Buttons.Lookup(id); ok {
			t.Error(id, "should not be registered")
		}
	}
}

func TestLoadIntoLogsEachUnit(t *testing.T) {
	l, as, dir := newLoader(t)
	root := filepath.Join(dir, "buttons")
	writeUnit(t, root, "good.toml", button("good", "good"))
	writeUnit(t, root, "no_handler.toml", "custom_id = \"bad\"\n")
	logs := captureLog(t)

	l.LoadInto(interaction.KindButton, as.Buttons, root)
	if as.Buttons.Len() != 1 {
		t.Error("expected exactly one entry", as.Buttons.Len())
	}
	if n := countLines(logs, "SUC loaded unit"); n != 1 {
		t.Error("expected one success line, got", n, logs.String())
	}
	if n := countLines(logs, "WRN unit is missing required properties"); n != 1 {
		t.Error("expected one warning line, got", n, logs.String())
	}
	if n := countLines(logs, "WRN") + countLines(logs, "ERR"); n != 1 {
		t.Error("expected no other warnings or errors", logs.String())
	}
}

func TestLoadIntoLastWins(t *testing.T) {
	l, as, dir := newLoader(t)
	root := filepath.Join(dir, "buttons")
	writeUnit(t, root, "a.toml", button("same", "first"))
	writeUnit(t, root, "b/c.toml", button("same", "second"))

	l.LoadInto(interaction.KindButton, as.Buttons, root)
	if as.Buttons.Len() != 1 {
		t.Error("duplicate exact ids should collapse", as.Buttons.Len())
	}
	if got := reply(t, as.Buttons, interaction.KindButton, "same"); got != "second" {
		t.Error("last unit in walk order should win, got", got)
	}
}

func TestLoadIntoKeepsUnknownEntries(t *testing.T) {
	l, as, dir := newLoader(t)
	as.Buttons.Insert(registry.Exact("manual"), &unit.Record{Unit: &unit.Unit{Handler: "manual"}})
	root := filepath.Join(dir, "buttons")
	writeUnit(t, root, "a.toml", button("a", "a"))

	l.LoadInto(interaction.KindButton, as.Buttons, root)
	if _, ok := as.Buttons.Lookup("manual"); !ok {
		t.Error("entries not found on disk should be kept")
	}
}

func TestLoadIntoPatternOrder(t *testing.T) {
	l, as, dir := newLoader(t)
	root := filepath.Join(dir, "buttons")
	writeUnit(t, root, "1.toml", "handler = \"test.reply\"\ncustom_id_pattern = '^vote_\\d+$'\n[params]\ncontent = \"digits\"\n")
	writeUnit(t, root, "2.toml", "handler = \"test.reply\"\ncustom_id_prefix = \"vote_\"\n[params]\ncontent = \"prefix\"\n")
	writeUnit(t, root, "3.toml", button("vote_7", "exact"))

	l.LoadInto(interaction.KindButton, as.Buttons, root)
	for key, want := range map[string]string{
		"vote_7":   "exact",
		"vote_1":   "digits",
		"vote_abc": "prefix",
	} {
		if got := reply(t, as.Buttons, interaction.KindButton, key); got != want {
			t.Error(key, "replied", got, "want", want)
		}
	}
}

func TestSelectMenuRoots(t *testing.T) {
	l, as, dir := newLoader(t)
	writeUnit(t, dir, "menus/pick.toml", button("pick", "menus"))
	writeUnit(t, dir, "menus/only_menus.toml", button("only_menus", "menus"))
	writeUnit(t, dir, "buttons/applications/pick.toml", button("pick", "applications"))

	l.LoadAll()
	if got := reply(t, as.SelectMenus, interaction.KindSelectMenu, "pick"); got != "applications" {
		t.Error("buttons/applications should overwrite menus, got", got)
	}
	if _, ok := as.SelectMenus.Lookup("only_menus"); !ok {
		t.Error("menus root not loaded")
	}
	// the applications directory is also part of the buttons tree
	if _, ok := as.Buttons.Lookup("pick"); !ok {
		t.Error("buttons root should include applications")
	}
}

func TestLoadAll(t *testing.T) {
	l, as, dir := newLoader(t)
	writeUnit(t, dir, "commands/ping.toml", "handler = \"test.reply\"\n[command]\nname = \"ping\"\ndescription = \"Ping.\"\n[params]\ncontent = \"pong\"\n")
	writeUnit(t, dir, "buttons/b.toml", button("b", "b"))
	writeUnit(t, dir, "modals/m.toml", button("m", "m"))
	writeUnit(t, dir, "menus/s.toml", button("s", "s"))

	l.LoadAll()
	for kind, key := range map[interaction.Kind]string{
		interaction.KindCommand:    "ping",
		interaction.KindButton:     "b",
		interaction.KindModal:      "m",
		interaction.KindSelectMenu: "s",
	} {
		if _, ok := as.Registry(kind).Lookup(key); !ok {
			t.Error(kind, key, "not loaded")
		}
	}
	// every kind root exists afterwards
	if _, err := os.Stat(filepath.Join(dir, "events")); err == nil {
		t.Error("events are bound by BindListeners, LoadAll should not touch them")
	}
}

func TestReload(t *testing.T) {
	l, as, dir := newLoader(t)
	root := filepath.Join(dir, "buttons")
	writeUnit(t, root, "ping.toml", button("ping", "v1"))
	writeUnit(t, root, "other.toml", button("other", "other"))
	writeUnit(t, root, "vote.toml", "handler = \"test.reply\"\ncustom_id_pattern = '^vote_\\d+$'\n")
	l.LoadAll()
	other, _ := as.Buttons.Lookup("other")

	// case: changed on disk
	writeUnit(t, root, "ping.toml", button("ping", "v2"))
	writeUnit(t, root, "broken.toml", "handler = ")
	if !l.Reload(interaction.KindButton, "ping") {
		t.Fatal("reload should find ping")
	}
	if got := reply(t, as.Buttons, interaction.KindButton, "ping"); got != "v2" {
		t.Error("reload did not pick up the change, got", got)
	}
	if now, _ := as.Buttons.Lookup("other"); now != other {
		t.Error("reload touched an unrelated entry")
	}

	// case: identifier not on disk
	before := as.Buttons.Len()
	if l.Reload(interaction.KindButton, "gone") {
		t.Error("reload of an unknown id should fail")
	}
	if as.Buttons.Len() != before {
		t.Error("failed reload changed the registry")
	}

	// case: unit removed from disk keeps the loaded entry
	loaded, _ := as.Buttons.Lookup("ping")
	if err := os.Remove(filepath.Join(root, "ping.toml")); err != nil {
		t.Fatal(err)
	}
	if l.Reload(interaction.KindButton, "ping") {
		t.Error("reload of a removed unit should fail")
	}
	if now, ok := as.Buttons.Lookup("ping"); !ok || now != loaded {
		t.Error("failed reload replaced the existing entry")
	}

	// case: pattern units are not reloadable by identifier
	if l.Reload(interaction.KindButton, `^vote_\d+$`) {
		t.Error("pattern unit should not be matched by reload")
	}

	// case: a unit added after startup is inserted
	writeUnit(t, root, "new/fresh.toml", button("fresh", "fresh"))
	if !l.Reload(interaction.KindButton, "fresh") {
		t.Error("reload should insert a new unit")
	}
	if got := reply(t, as.Buttons, interaction.KindButton, "fresh"); got != "fresh" {
		t.Error("fresh unit replied", got)
	}
}

func TestReloadLastMatchWins(t *testing.T) {
	l, as, dir := newLoader(t)
	writeUnit(t, dir, "menus/pick.toml", button("pick", "menus"))
	writeUnit(t, dir, "buttons/applications/pick.toml", button("pick", "applications"))
	l.LoadAll()

	if !l.Reload(interaction.KindSelectMenu, "pick") {
		t.Fatal("reload should find pick")
	}
	if got := reply(t, as.SelectMenus, interaction.KindSelectMenu, "pick"); got != "applications" {
		t.Error("reload should follow load precedence, got", got)
	}
}

func TestReloadCommand(t *testing.T) {
	l, as, dir := newLoader(t)
	writeUnit(t, dir, "commands/admin/ping.toml", "handler = \"test.reply\"\n[command]\nname = \"ping\"\ndescription = \"Ping.\"\n[params]\ncontent = \"pong\"\n")
	l.LoadAll()
	writeUnit(t, dir, "commands/admin/ping.toml", "handler = \"test.reply\"\n[command]\nname = \"ping\"\ndescription = \"Ping.\"\n[params]\ncontent = \"pong!\"\n")

	if !l.Reload(interaction.KindCommand, "ping") {
		t.Fatal("reload should find the command")
	}
	if got := reply(t, as.Commands, interaction.KindCommand, "ping"); got != "pong!" {
		t.Error("command not reloaded, got", got)
	}
}
