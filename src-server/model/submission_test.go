package model_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"cogbot/src-server/model"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a new database
	db.SetMaxOpenConns(1)
	bundb := bun.NewDB(db, sqlitedialect.New())
	t.Cleanup(func() { bundb.Close() })

	if err := model.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}
	return bundb
}

func TestSubmission(t *testing.T) {
	bundb := newTestDB(t)
	ctx := context.Background()

	first := model.Submission{
		UserID:    "42",
		Name:      "Ada",
		Message:   "hello",
		CreatedAt: 100,
	}
	second := model.Submission{
		UserID:    "42",
		Name:      "Ada",
		Message:   "again",
		CreatedAt: 200,
	}
	other := model.Submission{
		UserID:  "7",
		Name:    "Bob",
		Message: "hi",
	}
	for _, s := range []*model.Submission{&first, &second, &other} {
		if err := s.Insert(ctx, bundb); err != nil {
			t.Error(err)
		}
	}

	// case: ids are generated
	if first.ID == "" || first.ID == second.ID {
		t.Error("submission ids should be unique and set", first.ID, second.ID)
	}

	// case: latest first, only the user's rows
	func() {
		got, err := model.FindSubmissions(ctx, bundb, "42", 10)
		if err != nil {
			t.Error(err)
			return
		}
		if len(got) != 2 {
			t.Error("expected 2 submissions, got", len(got))
			return
		}
		if got[0].Message != "again" || got[1].Message != "hello" {
			t.Error("submissions not ordered newest first", got[0].Message, got[1].Message)
		}
	}()

	// case: limit
	func() {
		got, err := model.FindSubmissions(ctx, bundb, "42", 1)
		if err != nil {
			t.Error(err)
			return
		}
		if len(got) != 1 {
			t.Error("limit not applied", len(got))
		}
	}()

	// case: embed carries the submission
	func() {
		embed := first.ToDiscordEmbed()
		if embed.Title != "Ada" || embed.Description != "hello" {
			t.Error("embed does not match submission", embed.Title, embed.Description)
		}
		if !strings.Contains(embed.Footer.Text, first.ID) {
			t.Error("embed footer should carry the id", embed.Footer.Text)
		}
	}()
}

func TestSubmissionInsertRejects(t *testing.T) {
	bundb := newTestDB(t)
	for name, s := range map[string]model.Submission{
		"no user":      {Name: "a", Message: "b"},
		"no name":      {UserID: "1", Message: "b"},
		"no message":   {UserID: "1", Name: "a"},
		"long name":    {UserID: "1", Name: strings.Repeat("a", model.SubmissionNameMaxLen+1), Message: "b"},
		"long message": {UserID: "1", Name: "a", Message: strings.Repeat("b", model.SubmissionMessageMaxLen+1)},
	} {
		if err := s.Insert(context.Background(), bundb); err == nil {
			t.Error(name, "should be rejected")
		}
	}

	count, err := bundb.NewSelect().
		Model((*model.Submission)(nil)).
		Count(context.Background())
	if err != nil {
		t.Error(err)
	}
	if count != 0 {
		t.Error("rejected submissions should not be stored", count)
	}
}

func TestReloadAudit(t *testing.T) {
	bundb := newTestDB(t)
	ctx := context.Background()

	for i, audit := range []model.ReloadAudit{
		{Source: model.RELOAD_SOURCE_COMMAND, Actor: "42", Kind: "button", UnitID: "ping", OK: true, CreatedAt: 1},
		{Source: model.RELOAD_SOURCE_HTTP, Actor: "127.0.0.1", Kind: "command", UnitID: "gone", OK: false, CreatedAt: 2},
		{Source: model.RELOAD_SOURCE_SIGNAL, Kind: "all", OK: true, CreatedAt: 3},
	} {
		if err := audit.Insert(ctx, bundb); err != nil {
			t.Error(i, err)
		}
	}
	if err := (&model.ReloadAudit{Kind: "button"}).Insert(ctx, bundb); err == nil {
		t.Error("audit without a source should be rejected")
	}

	got, err := model.RecentReloads(ctx, bundb, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatal("expected 2 audits, got", len(got))
	}
	if got[0].Source != model.RELOAD_SOURCE_SIGNAL || got[1].UnitID != "gone" || got[1].OK {
		t.Error("unexpected audits", got)
	}
}
