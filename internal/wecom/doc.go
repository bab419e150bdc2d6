// Package wecom delivers markdown messages to a WeCom group-robot webhook.
//
// The webhook accepts an HTTP POST with a JSON body of the form
//
//	{"msgtype": "markdown", "markdown": {"content": "..."}}
//
// and answers with {"errcode": 0, "errmsg": "ok"} on success. A non-zero
// errcode means the platform accepted the call but rejected the message
// (for example: content over the size limit, rate limited).
//
// Client performs exactly one attempt per message and classifies the
// result; it never panics or hangs past its configured timeout.
package wecom
