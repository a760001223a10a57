package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/matrix-clock/internal/status"
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
	"hhmmss": func(h, m, s int) string {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	},
	"hhmm": func(minute int) string {
		return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Matrix Clock</title>
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
#clock { font-size: 2.2em; letter-spacing: 2px; }
button { font-family: monospace; margin-right: 6px; padding: 4px 10px; }
input[type=number] { width: 4em; font-family: monospace; }
canvas { image-rendering: pixelated; border: 1px solid #ddd; width: 100%; max-width: 512px; }
</style>
</head>
<body>
<h1>Matrix Clock</h1>

<p id="clock">{{hhmmss .Time.Hour24 .Time.Minute .Time.Second}}</p>
<canvas id="matrix" width="32" height="16"></canvas>

<h2>Display</h2>
<table>
<tr><th>Power</th><td id="power" class="{{if .Powered}}on{{else}}off{{end}}">{{if .Powered}}ON{{else}}OFF{{end}}</td></tr>
<tr><th>Intensity</th><td id="intensity">{{.Intensity}}</td></tr>
<tr><th>Phase</th><td id="phase">{{.Phase}}</td></tr>
<tr><th>Brightness</th><td id="brightness">{{if .BrightnessMode.Manual}}manual ({{.BrightnessMode.Value}}){{else}}auto{{end}}</td></tr>
<tr><th>Ambient light</th><td id="light">{{.Light}}</td></tr>
<tr><th>Motion</th><td id="motion">{{if .Motion}}yes{{else}}no{{end}}</td></tr>
</table>
<p>
<button onclick="post('/power')">Power</button>
<button onclick="post('/brightness?mode=toggle')">Auto/Manual</button>
<input type="number" id="bval" min="1" max="15" value="{{.BrightnessMode.Value}}">
<button onclick="post('/brightness?value=' + document.getElementById('bval').value)">Set</button>
<button onclick="post('/format')">12/24h</button>
<button onclick="post('/units')">C/F</button>
</p>

<h2>Schedule</h2>
<table>
<tr><th>Night window</th><td>{{if .Schedule.Enabled}}{{hhmm .Schedule.StartMinute}} to {{hhmm .Schedule.EndMinute}}{{else}}disabled{{end}}</td></tr>
<tr><th>In window now</th><td>{{if .InOffWindow}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Environment</h2>
<table>
{{if .Env.Available}}
<tr><th>Temperature</th><td>{{.Env.TemperatureC}} C</td></tr>
<tr><th>Humidity</th><td>{{.Env.HumidityPct}} %</td></tr>
<tr><th>Pressure</th><td>{{.Env.PressureHPa}} hPa</td></tr>
{{else}}
<tr><th>Sensor</th><td>not present</td></tr>
{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>Timezone</th><td>{{.ZoneName}}</td></tr>
<tr><th>NTP</th><td class="{{if .TimeSynced}}connected{{else}}disconnected{{end}}">{{if .TimeSynced}}synced{{else}}not synced{{end}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} — {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Display ON</th><td>{{.Counts.DisplayOn}}</td></tr>
<tr><th>Display OFF</th><td>{{.Counts.DisplayOff}}</td></tr>
<tr><th>Motion</th><td>{{.Counts.Motion}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Inactivity timeout</th><td>{{.Config.TimeoutS}}s</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/api/status">JSON</a> · <a href="/api/matrix">Matrix</a></p>

<script>
function post(path) {
  fetch(path, { method: "POST" }).then(refresh);
}

function drawMatrix(mj) {
  var ctx = document.getElementById("matrix").getContext("2d");
  ctx.fillStyle = "#111";
  ctx.fillRect(0, 0, mj.width, mj.height);
  ctx.fillStyle = mj.powered ? "#f40" : "#333";
  for (var y = 0; y < mj.height; y++) {
    for (var x = 0; x < mj.width; x++) {
      if (mj.rows[y] & (1 << x)) ctx.fillRect(x, y, 1, 1);
    }
  }
}

function refresh() {
  fetch("/api/status").then(function(r) { return r.json(); }).then(function(doc) {
    var st = doc.status;
    var powerEl = document.getElementById("power");
    powerEl.textContent = st.display.powered ? "ON" : "OFF";
    powerEl.className = st.display.powered ? "on" : "off";
    document.getElementById("intensity").textContent = st.display.intensity;
    document.getElementById("phase").textContent = st.display.phase;
    document.getElementById("brightness").textContent =
      st.display.brightness_mode === "manual" ? "manual (" + st.display.manual_value + ")" : "auto";
    document.getElementById("light").textContent = st.sensors.light;
    document.getElementById("motion").textContent = st.sensors.motion ? "yes" : "no";
    document.getElementById("clock").textContent = st.clock.time;
  });
  fetch("/api/matrix").then(function(r) { return r.json(); }).then(drawMatrix);
}

setInterval(refresh, 2000);
refresh();

(function() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var sock;
  function connect() {
    sock = new WebSocket(proto + location.host + "/ws");
    sock.onmessage = refresh;
    sock.onclose = function() { setTimeout(connect, 5000); };
  }
  connect();
})();
</script>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
