// Package httpapi exposes tab commands and queries over JSON/HTTP.
//
// Command routes decide against the tab's journal and answer with the events
// they produced; rejections map to structured {code, message} bodies. Query
// routes fold the journal on demand, so there is no separate read model.
package httpapi
