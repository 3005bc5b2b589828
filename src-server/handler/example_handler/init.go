package example_handler

import "cogbot/src-server/handler"

// Init registers the example interactions: a command that posts a button,
// a modal button and a select menu, plus the handlers behind them.
func Init(t *handler.Table) {
	t.Register("example.command", command)
	t.Register("example.button", button)
	t.Register("example.show_modal", showModal)
	t.Register("example.modal", modal)
	t.Register("example.menu", menu)
	t.Register("example.submissions", submissions)
	t.Register("static.reply", staticReply)
}
