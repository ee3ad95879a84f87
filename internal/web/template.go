package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/glove-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onOff": func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Glove Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Glove Controller</h1>

<h2>Gesture</h2>
<table>
<tr><th>Last classification</th><td>{{.LastGesture}}</td></tr>
<tr><th>Frames sampled</th><td>{{.Frames}}</td></tr>
</table>

{{if .HaveFrame}}
<h2>Last Frame</h2>
<table>
<tr><th>Flex 1</th><td>{{.LastFrame.Flex1}}</td></tr>
<tr><th>Flex 2</th><td>{{.LastFrame.Flex2}}</td></tr>
<tr><th>Accel X</th><td>{{printf "%.2f" .LastFrame.AccelX}} m/s²</td></tr>
<tr><th>Accel Y</th><td>{{printf "%.2f" .LastFrame.AccelY}} m/s²</td></tr>
<tr><th>Accel Z</th><td>{{printf "%.2f" .LastFrame.AccelZ}} m/s²</td></tr>
<tr><th>Touch 1</th><td class="{{if .LastFrame.Touch1}}on{{else}}off{{end}}">{{onOff .LastFrame.Touch1}}</td></tr>
<tr><th>Touch 2</th><td class="{{if .LastFrame.Touch2}}on{{else}}off{{end}}">{{onOff .LastFrame.Touch2}}</td></tr>
</table>
{{end}}

<h2>Connectivity</h2>
<table>
<tr><th>Link</th><td class="{{if eq (printf "%s" .Link) "UP"}}connected{{else}}disconnected{{end}}">{{.Link}}</td></tr>
<tr><th>Session</th><td class="{{if eq (printf "%s" .Session) "CONNECTED"}}connected{{else}}disconnected{{end}}">{{.Session}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Topic</th><td>{{.Config.Topic}}</td></tr>
</table>

<h2>Counts</h2>
<table>
<tr><th>Fist</th><td>{{.Counts.Fist}}</td></tr>
<tr><th>Open hand</th><td>{{.Counts.OpenHand}}</td></tr>
<tr><th>Left</th><td>{{.Counts.Left}}</td></tr>
<tr><th>Right</th><td>{{.Counts.Right}}</td></tr>
<tr><th>Publish failures</th><td>{{.Counts.PublishFailures}}</td></tr>
<tr><th>Read errors</th><td>{{.Counts.ReadErrors}}</td></tr>
<tr><th>Dropped (not ready)</th><td>{{.Counts.Dropped}}</td></tr>
</table>

<h2>Calibration</h2>
<table>
<tr><th>Fist max</th><td>{{.Config.FistMax}}</td></tr>
<tr><th>Open min</th><td>{{.Config.OpenMin}}</td></tr>
<tr><th>Tilt threshold</th><td>{{.Config.Tilt}} m/s²</td></tr>
<tr><th>Sample</th><td>{{.Config.SampleMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Best effort; a render error just truncates the page.
	_ = indexTmpl.Execute(w, snap)
}
