package example_handler_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"cogbot/src-server/handler"
	"cogbot/src-server/handler/example_handler"
	"cogbot/src-server/interaction"
	"cogbot/src-server/interaction/interactiontest"
	"cogbot/src-server/model"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func build(t *testing.T, as *utils.AppState, name string, u *unit.Unit) unit.Handler {
	t.Helper()
	table := handler.NewTable()
	example_handler.Init(table)
	factory, ok := table.Factory(name)
	if !ok {
		t.Fatal(name, "not registered")
	}
	u.Handler = name
	h, err := factory(as, u)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func newAppState(t *testing.T) *utils.AppState {
	t.Helper()
	as := utils.NewLocalAppState(&utils.Config{})
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	as.BunDB = bun.NewDB(db, sqlitedialect.New())
	t.Cleanup(func() { as.BunDB.Close() })
	if err := model.CreateSchema(as.BunDB); err != nil {
		t.Fatal(err)
	}
	return as
}

func TestExampleCommand(t *testing.T) {
	as := utils.NewLocalAppState(&utils.Config{})
	h := build(t, as, "example.command", &unit.Unit{Params: map[string]any{"menu_id": "custom_menu"}})
	e := interactiontest.New(interaction.KindCommand, "example")

	if err := h.Invoke(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if len(e.Responses) != 1 {
		t.Fatal("expected one reply", len(e.Responses))
	}
	data := e.Responses[0].Data
	if len(data.Embeds) != 1 || len(data.Components) != 2 {
		t.Fatal("expected an embed and two rows", data)
	}
	if data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		t.Error("example command reply should be public")
	}
	row, ok := data.Components[1].(discordgo.ActionsRow)
	if !ok {
		t.Fatal("second row is not an actions row")
	}
	if menu, ok := row.Components[0].(discordgo.SelectMenu); !ok || menu.CustomID != "custom_menu" {
		t.Error("menu custom id should come from params", row.Components[0])
	}
}

func TestExampleButton(t *testing.T) {
	as := utils.NewLocalAppState(&utils.Config{})
	h := build(t, as, "example.button", &unit.Unit{})
	e := interactiontest.New(interaction.KindButton, "example_button")

	if err := h.Invoke(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	data := e.Responses[0].Data
	if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("button reply should be ephemeral")
	}
	if data.Embeds[0].Title != "Example Button Clicked!" {
		t.Error("unexpected title", data.Embeds[0].Title)
	}
}

func TestExampleShowModal(t *testing.T) {
	as := utils.NewLocalAppState(&utils.Config{})
	h := build(t, as, "example.show_modal", &unit.Unit{})
	e := interactiontest.New(interaction.KindButton, "show_example_modal")

	if err := h.Invoke(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	resp := e.Responses[0]
	if resp.Type != discordgo.InteractionResponseModal {
		t.Error("expected a modal response", resp.Type)
	}
	if resp.Data.CustomID != "example_modal" || len(resp.Data.Components) != 2 {
		t.Error("unexpected modal", resp.Data.CustomID, len(resp.Data.Components))
	}
}

func modalSubmission(name, message string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionModalSubmit,
		GuildID:   "guild",
		ChannelID: "channel",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "42", Username: "ada"}},
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: "example_modal",
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "name_input", Value: name},
				}},
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "message_input", Value: message},
				}},
			},
		},
	}}
}

func TestExampleModal(t *testing.T) {
	as := newAppState(t)
	h := build(t, as, "example.modal", &unit.Unit{})

	e := interactiontest.New(interaction.KindModal, "example_modal")
	e.Raw = modalSubmission("  ada lovelace. ", "hello")
	if err := h.Invoke(context.Background(), e); err != nil {
		t.Fatal(err)
	}

	embed := e.Responses[0].Data.Embeds[0]
	if embed.Fields[0].Value != "Ada Lovelace" || embed.Fields[1].Value != "hello" {
		t.Error("unexpected echo", embed.Fields[0].Value, embed.Fields[1].Value)
	}

	stored, err := model.FindSubmissions(context.Background(), as.BunDB, "42", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Name != "Ada Lovelace" || stored[0].GuildID != "guild" {
		t.Error("submission not stored", stored)
	}
}

func TestExampleModalRejects(t *testing.T) {
	as := newAppState(t)
	h := build(t, as, "example.modal", &unit.Unit{})

	// case: synthetic event without payload
	if err := h.Invoke(context.Background(), interactiontest.New(interaction.KindModal, "example_modal")); err == nil {
		t.Error("expected an error without a modal payload")
	}

	// case: blank name fails validation and nothing is sent
	e := interactiontest.New(interaction.KindModal, "example_modal")
	e.Raw = modalSubmission("   ", "")
	if err := h.Invoke(context.Background(), e); err == nil {
		t.Error("expected a validation error")
	}
	if len(e.Responses) != 0 {
		t.Error("nothing should be sent on failure", e.Contents())
	}
}

func TestExampleMenu(t *testing.T) {
	as := utils.NewLocalAppState(&utils.Config{})
	h := build(t, as, "example.menu", &unit.Unit{})

	e := interactiontest.New(interaction.KindSelectMenu, "example_menu")
	e.Raw = &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      "example_menu",
			ComponentType: discordgo.SelectMenuComponent,
			Values:        []string{"option_2"},
		},
	}}
	if err := h.Invoke(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if desc := e.Responses[0].Data.Embeds[0].Description; !strings.Contains(desc, "option_2") {
		t.Error("selection not echoed", desc)
	}
}

func TestStaticReply(t *testing.T) {
	as := utils.NewLocalAppState(&utils.Config{})
	table := handler.NewTable()
	example_handler.Init(table)
	factory, _ := table.Factory("static.reply")

	if _, err := factory(as, &unit.Unit{Handler: "static.reply"}); err == nil {
		t.Error("missing content should fail the factory")
	}

	h, err := factory(as, &unit.Unit{
		Handler: "static.reply",
		Params:  map[string]any{"content": "pong", "ephemeral": false},
	})
	if err != nil {
		t.Fatal(err)
	}
	e := interactiontest.New(interaction.KindButton, "ping")
	if err := h.Invoke(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if c := e.Contents(); len(c) != 1 || c[0] != "pong" {
		t.Error("unexpected reply", c)
	}
	if e.Responses[0].Data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		t.Error("ephemeral = false should give a public reply")
	}
}

func TestSubmissions(t *testing.T) {
	as := newAppState(t)
	ctx := context.Background()
	for i, name := range []string{"Old", "Middle", "New"} {
		s := model.Submission{UserID: "42", Name: name, Message: "m", CreatedAt: int64(100 + i)}
		if err := s.Insert(ctx, as.BunDB); err != nil {
			t.Fatal(err)
		}
	}
	other := model.Submission{UserID: "7", Name: "Other", Message: "m"}
	if err := other.Insert(ctx, as.BunDB); err != nil {
		t.Fatal(err)
	}

	h := build(t, as, "example.submissions", &unit.Unit{Params: map[string]any{"limit": int64(2)}})
	e := interactiontest.New(interaction.KindCommand, "submissions")
	e.Raw = &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionApplicationCommand,
		Member: &discordgo.Member{User: &discordgo.User{ID: "42"}},
	}}
	if err := h.Invoke(ctx, e); err != nil {
		t.Fatal(err)
	}
	data := e.Responses[0].Data
	if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("submission list should be ephemeral")
	}
	var titles []string
	for _, embed := range data.Embeds {
		titles = append(titles, embed.Title)
	}
	if strings.Join(titles, ",") != "New,Middle" {
		t.Error("expected the two newest own submissions", titles)
	}

	// case: nothing stored yet
	e = interactiontest.New(interaction.KindCommand, "submissions")
	e.Raw = &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		User: &discordgo.User{ID: "99"},
	}}
	if err := h.Invoke(ctx, e); err != nil {
		t.Fatal(err)
	}
	if c := e.Contents(); len(c) != 1 || !strings.Contains(c[0], "haven't submitted") {
		t.Error("unexpected reply", c)
	}

	// case: limit outside what one message can carry
	table := handler.NewTable()
	example_handler.Init(table)
	factory, _ := table.Factory("example.submissions")
	if _, err := factory(as, &unit.Unit{Params: map[string]any{"limit": int64(11)}}); err == nil {
		t.Error("limit above 10 should fail the factory")
	}
}
