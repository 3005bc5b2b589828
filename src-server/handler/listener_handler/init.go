package listener_handler

import "cogbot/src-server/handler"

func Init(t *handler.Table) {
	t.Listen("events.ready", ready)
	t.Listen("events.guild_create", guildCreate)
}
