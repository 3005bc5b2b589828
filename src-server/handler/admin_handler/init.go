package admin_handler

import "cogbot/src-server/handler"

func Init(t *handler.Table) {
	t.Register("admin.ping", ping)
	t.Register("admin.reload", reload)
}
