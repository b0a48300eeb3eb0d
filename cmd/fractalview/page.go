package main

// The browser part of the preview: a canvas fed by PNG frames pushed over
// the websocket. Click recenters, '+' zooms in, '-' zooms out.
const page = `<!DOCTYPE html>
<html>
<head>
<title>fractalview</title>
<style>body { background: #111; color: #ddd; font-family: monospace; }</style>
</head>
<body>
<div id="status">connecting...</div>
<canvas id="view" width="896" height="512"></canvas>
<script>
const canvas = document.getElementById("view");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
let view = { x: -0.5, y: 0, halfWidth: 1.6 };
let busy = false;

const proto = location.protocol === "https:" ? "wss" : "ws";
const ws = new WebSocket(proto + "://" + location.host + "/ws");
ws.binaryType = "arraybuffer";

function describe() {
  return "x=" + view.x.toPrecision(8) + " y=" + view.y.toPrecision(8) +
    " hw=" + view.halfWidth.toPrecision(4);
}

function request() {
  if (ws.readyState !== WebSocket.OPEN || busy) return;
  busy = true;
  status.textContent = "rendering " + describe();
  ws.send(JSON.stringify(view));
}

ws.onopen = request;
ws.onclose = () => { status.textContent = "disconnected"; };
ws.onmessage = async (ev) => {
  const frame = await createImageBitmap(new Blob([ev.data], { type: "image/png" }));
  ctx.drawImage(frame, 0, 0);
  busy = false;
  status.textContent = describe() + "  (click to recenter, +/- to zoom)";
};

canvas.addEventListener("click", (ev) => {
  const r = canvas.getBoundingClientRect();
  const px = ev.clientX - r.left, py = ev.clientY - r.top;
  const halfHeight = view.halfWidth * canvas.height / canvas.width;
  view.x += (px / canvas.width - 0.5) * 2 * view.halfWidth;
  view.y -= (py / canvas.height - 0.5) * 2 * halfHeight;
  request();
});

document.addEventListener("keydown", (ev) => {
  if (ev.key === "+" || ev.key === "=") view.halfWidth *= 0.75;
  else if (ev.key === "-" || ev.key === "_") view.halfWidth *= 2;
  else return;
  request();
});
</script>
</body>
</html>
`
