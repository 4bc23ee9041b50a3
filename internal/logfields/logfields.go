package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoot       = "root"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyGroup      = "group"
	KeyCount      = "count"
	KeyReason     = "reason"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Root(r string) slog.Attr          { return slog.String(KeyRoot, r) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Group(g string) slog.Attr         { return slog.String(KeyGroup, g) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func Output(o string) slog.Attr        { return slog.String(KeyOutput, o) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
